package hotkey

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse converts a combination such as "ctrl+alt+p" into a Hotkey. Tokens are
// case-insensitive and separated by "+"; the last token is the key, the
// others are modifiers. A key may also be given as a hex code ("0x70").
func Parse(spec string) (Hotkey, error) {
	raw := strings.TrimSpace(spec)
	if raw == "" {
		return Hotkey{}, fmt.Errorf("hotkey spec is empty")
	}

	parts := strings.Split(strings.ToLower(raw), "+")
	key, err := parseKey(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return Hotkey{}, fmt.Errorf("hotkey %q: %w", raw, err)
	}

	var mods Modifier
	for _, token := range parts[:len(parts)-1] {
		name := strings.TrimSpace(token)
		mod, ok := modifierAliases[name]
		if !ok {
			return Hotkey{}, fmt.Errorf("hotkey %q: unknown modifier %q", raw, name)
		}
		mods |= mod
	}

	return New(mods, key), nil
}

// MustParse is Parse that panics on error, for static tables.
func MustParse(spec string) Hotkey {
	hk, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return hk
}

func parseKey(token string) (Key, error) {
	if token == "" {
		return 0, fmt.Errorf("missing key")
	}
	if alias, ok := keyAliases[token]; ok {
		token = alias
	}
	if key, ok := keyNames[token]; ok {
		return key, nil
	}
	if strings.HasPrefix(token, "0x") {
		v, err := strconv.ParseUint(token[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid key code %q", token)
		}
		return Key(v), nil
	}
	return 0, fmt.Errorf("unknown key %q", token)
}
