package constants

import (
	_ "embed"
	"encoding/json"
	"errors"
	"sync"
)

// Android keyevent codes the panel sends directly.
const (
	KeycodeHome = 3
	KeycodeBack = 4
)

//go:embed keycodes.json
var keycodesJSON []byte

var (
	name2CodeMap map[string]int
	code2NameMap map[int]string
	errLoad      error
	once         = new(sync.Once)
)

// LoadKeycodes loads the keyevent name table from the embedded JSON.
func LoadKeycodes() (map[string]int, error) {
	once.Do(func() {
		name2CodeMap = make(map[string]int)
		if err := json.Unmarshal(keycodesJSON, &name2CodeMap); err != nil {
			errLoad = errors.Join(err, errors.New("failed to unmarshal embedded keycodes.json"))
			return
		}

		code2NameMap = make(map[int]string)
		for name, code := range name2CodeMap {
			code2NameMap[code] = name
		}
	})
	if errLoad != nil {
		return nil, errLoad
	}
	return name2CodeMap, nil
}

// KeycodeByName resolves a keyevent name such as "HOME" to its code.
func KeycodeByName(name string) (int, bool) {
	if _, err := LoadKeycodes(); err != nil {
		return 0, false
	}
	code, ok := name2CodeMap[name]
	return code, ok
}

// KeyNameByCode resolves a keyevent code to its name, when known.
func KeyNameByCode(code int) (string, bool) {
	if _, err := LoadKeycodes(); err != nil {
		return "", false
	}
	name, ok := code2NameMap[code]
	return name, ok
}
