package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			"separate value",
			[]string{"-c", "conf.json", "-x", "other"},
			[]string{"-c"},
			[]string{"-c", "conf.json"},
		},
		{
			"equals form",
			[]string{"--config=conf.json", "-v"},
			[]string{"--config"},
			[]string{"--config=conf.json"},
		},
		{
			"flag followed by another flag keeps no value",
			[]string{"-c", "-v"},
			[]string{"-c"},
			[]string{"-c"},
		},
		{
			"nothing allowed",
			[]string{"-a", "1", "-b"},
			nil,
			[]string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FilterArgs(tc.args, tc.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-c", "my.json", "-unrelated", "x"}
	assert.Equal(t, "my.json", JsonConfigFlags())

	os.Args = []string{"testbin"}
	assert.Equal(t, "", JsonConfigFlags())
}
