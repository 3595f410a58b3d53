package config

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// scaffold mirrors the built-in configuration with stable field order,
// so generated files always look the same.
type scaffold struct {
	Presets  scaffoldPresets    `toml:"presets"`
	Sessions map[string]Session `toml:"sessions"`
}

type scaffoldPresets struct {
	Pomodoro  string `toml:"pomodoro"`
	Break     string `toml:"break"`
	LongBreak string `toml:"long-break"`
}

const scaffoldHeader = `# tik configuration.
#
# Presets map a name to a duration literal (h/m/s components, e.g. "25m",
# "1h30m"). Sessions describe a work/break cycle; their work, break, and
# long_break fields may name a preset or hold a literal.

`

// DefaultTOML renders the built-in configuration as a commented TOML
// document, for 'tik config init'.
func DefaultTOML() ([]byte, error) {
	doc := scaffold{
		Presets: scaffoldPresets{
			Pomodoro:  DefaultPomodoro,
			Break:     DefaultBreak,
			LongBreak: DefaultLongBreak,
		},
		Sessions: map[string]Session{
			"pomodoro": {
				Work:      "pomodoro",
				Break:     "break",
				LongBreak: "long-break",
				Rounds:    DefaultRounds,
			},
		},
	}

	body, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal default config: %w", err)
	}

	return append([]byte(scaffoldHeader), body...), nil
}
