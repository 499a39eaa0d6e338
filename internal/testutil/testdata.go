package testutil

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// LoadJSON loads a JSON fixture from testdata relative to the repo root.
func LoadJSON(t *testing.T, rel string, v any) {
	t.Helper()
	data := readTestdata(t, rel)
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decode %s: %v", rel, err)
	}
}

// LoadHex returns a trimmed hex string from testdata relative path.
func LoadHex(t *testing.T, rel string) string {
	t.Helper()
	data := readTestdata(t, rel)
	return strings.TrimSpace(string(data))
}

// LoadGolden returns the <name>.hex payload and the fields expected in
// <name>.json, both under testdata/<dir>.
func LoadGolden(t *testing.T, dir, name string) (string, map[string]any) {
	t.Helper()
	payload := LoadHex(t, filepath.Join(dir, name+".hex"))
	expected := map[string]any{}
	LoadJSON(t, filepath.Join(dir, name+".json"), &expected)
	return payload, expected
}

// DiffFields compares decoded fields against JSON-decoded expectations.
// Numbers compare within 1e-6 regardless of their Go type. It returns ""
// when the maps match.
func DiffFields(expected, actual map[string]any) string {
	if len(expected) != len(actual) {
		return fmt.Sprintf("len mismatch expected %d %v actual %d %v", len(expected), keys(expected), len(actual), keys(actual))
	}
	for k, v := range expected {
		av, ok := actual[k]
		if !ok {
			return fmt.Sprintf("missing key %s", k)
		}
		ev, eNum := number(v)
		an, aNum := number(av)
		switch {
		case eNum && aNum:
			if math.Abs(ev-an) > 1e-6 {
				return fmt.Sprintf("key %s mismatch expected %v got %v", k, v, av)
			}
		case fmt.Sprintf("%v", v) != fmt.Sprintf("%v", av):
			return fmt.Sprintf("key %s mismatch expected %v got %v", k, v, av)
		}
	}
	return ""
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case uint16:
		return float64(n), true
	default:
		return 0, false
	}
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func readTestdata(t *testing.T, rel string) []byte {
	t.Helper()
	candidates := []string{
		filepath.Join("testdata", rel),
		filepath.Join("..", "testdata", rel),
		filepath.Join("..", "..", "testdata", rel),
		filepath.Join("..", "..", "..", "testdata", rel),
	}
	for _, path := range candidates {
		if data, err := os.ReadFile(path); err == nil {
			return data
		}
	}
	t.Fatalf("unable to locate testdata file %s", rel)
	return nil
}
