// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package app

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func run(fs afero.Fs, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := NewCommand(
		FS(fs),
		Output(&out),
		Logger(zap.NewNop()),
	)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	return out.String(), err
}

func testFS(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	files := map[string]string{
		"good.toml":     "title = \"example\"\n\n[owner]\nname = \"Tom\"\nage = 42\n",
		"empty.toml":    "",
		"bad.toml":      "title = ",
		"binary.toml":   string([]byte{0xff, 0xfe}),
		"settings.toml": "log_level = \"debug\"\nconcurrency = 2\n",
		"typo.toml":     "concurency = 2\n",
		"negative.toml": "concurrency = -1\n",
	}
	for name, content := range files {
		err := afero.WriteFile(fs, name, []byte(content), 0o644)
		if err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

func TestValidate(t *testing.T) {
	fs := testFS(t)

	t.Run("will succeed", func(t *testing.T) {
		t.Run("if every file is valid toml", func(t *testing.T) {
			out, err := run(fs, "validate", "good.toml", "empty.toml")
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "ok  good.toml\nok  empty.toml\n", out) {
				return
			}
		})

		t.Run("if settings are provided", func(t *testing.T) {
			out, err := run(fs, "--config", "settings.toml", "validate", "good.toml")
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "ok  good.toml\n", out) {
				return
			}
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if any file is invalid", func(t *testing.T) {
			out, err := run(fs, "validate", "good.toml", "bad.toml", "missing.toml", "binary.toml")

			var ierr InvalidFilesError
			if !assert.ErrorAs(t, err, &ierr) {
				return
			}
			if !assert.Equal(t, []string{"bad.toml", "missing.toml", "binary.toml"}, ierr.Paths) {
				return
			}
			if !assert.Contains(t, out, "ok  good.toml\n") {
				return
			}
			if !assert.Contains(t, out, "err bad.toml: invalid data:") {
				return
			}
			if !assert.Contains(t, out, "err missing.toml: read error:") {
				return
			}
			if !assert.Contains(t, out, "err binary.toml: invalid data: stream did not contain valid UTF-8") {
				return
			}
		})

		t.Run("if no files are given", func(t *testing.T) {
			_, err := run(fs, "validate")
			if !assert.Error(t, err) {
				return
			}
		})

		t.Run("if the settings file has unknown keys", func(t *testing.T) {
			_, err := run(fs, "--config", "typo.toml", "validate", "good.toml")
			if !assert.ErrorContains(t, err, "failed to read typo.toml") {
				return
			}
		})

		t.Run("if the settings fail validation", func(t *testing.T) {
			_, err := run(fs, "--config", "negative.toml", "validate", "good.toml")
			if !assert.ErrorContains(t, err, "concurrency must not be negative") {
				return
			}
		})
	})
}

func TestGet(t *testing.T) {
	fs := testFS(t)

	t.Run("will print the value", func(t *testing.T) {
		testCases := []struct {
			name     string
			key      string
			expected string
		}{
			{
				name:     "if the key is top level",
				key:      "title",
				expected: "example\n",
			},
			{
				name:     "if the key is nested",
				key:      "owner.age",
				expected: "42\n",
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				out, err := run(fs, "get", "--file", "good.toml", tc.key)
				if !assert.Nil(t, err) {
					return
				}
				if !assert.Equal(t, tc.expected, out) {
					return
				}
			})
		}

		t.Run("if the key is a table", func(t *testing.T) {
			out, err := run(fs, "get", "--file", "good.toml", "owner")
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Contains(t, out, "age = 42") {
				return
			}
			if !assert.Contains(t, out, "Tom") {
				return
			}
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the key does not exist", func(t *testing.T) {
			_, err := run(fs, "get", "--file", "good.toml", "owner.email")

			var kerr KeyNotFoundError
			if !assert.ErrorAs(t, err, &kerr) {
				return
			}
			if !assert.Equal(t, "owner.email", kerr.Key) {
				return
			}
		})

		t.Run("if the key walks through a value which is not a table", func(t *testing.T) {
			_, err := run(fs, "get", "--file", "good.toml", "title.length")

			var kerr KeyNotFoundError
			if !assert.ErrorAs(t, err, &kerr) {
				return
			}
		})

		t.Run("if the file flag is missing", func(t *testing.T) {
			_, err := run(fs, "get", "title")
			if !assert.Error(t, err) {
				return
			}
		})

		t.Run("if the file is not valid toml", func(t *testing.T) {
			_, err := run(fs, "get", "--file", "bad.toml", "title")
			if !assert.ErrorContains(t, err, "invalid data") {
				return
			}
		})
	})
}

func TestSettings_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		settings  Settings
		expectErr bool
	}{
		{
			name:     "accepts unset concurrency",
			settings: Settings{},
		},
		{
			name:     "accepts positive concurrency",
			settings: Settings{Concurrency: 8},
		},
		{
			name:      "rejects negative concurrency",
			settings:  Settings{Concurrency: -1},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.settings.Validate()
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.Nil(t, err)
		})
	}
}

func TestSettings_concurrency(t *testing.T) {
	t.Run("will use the default", func(t *testing.T) {
		t.Run("if concurrency is unset", func(t *testing.T) {
			if !assert.Equal(t, defaultConcurrency, Settings{}.concurrency()) {
				return
			}
		})
	})

	t.Run("will use the configured value", func(t *testing.T) {
		t.Run("if concurrency is positive", func(t *testing.T) {
			if !assert.Equal(t, 8, Settings{Concurrency: 8}.concurrency()) {
				return
			}
		})
	})
}
