package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptConfirmerAcceptsYes(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"y\n", "Y\n", "yes\n", " Yes \n"} {
		out := &bytes.Buffer{}
		c := &promptConfirmer{in: strings.NewReader(input), out: out}

		assert.True(t, c.Confirm("Delete user a@x.com?"), input)
		assert.Contains(t, out.String(), "Delete user a@x.com? [y/N]:")
	}
}

func TestPromptConfirmerDefaultsToNo(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"\n", "n\n", "no\n", "maybe\n"} {
		c := &promptConfirmer{in: strings.NewReader(input), out: &bytes.Buffer{}}
		assert.False(t, c.Confirm("Delete user a@x.com?"), input)
	}
}

func TestPromptConfirmerAssumeYesSkipsPrompt(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	c := &promptConfirmer{in: strings.NewReader(""), out: out, assumeYes: true}

	assert.True(t, c.Confirm("Delete user a@x.com?"))
	assert.Empty(t, out.String())
}
