package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringsOrEmpty(t *testing.T) {
	assert.Equal(t, []string{}, []string(stringsOrEmpty(nil)))
	assert.Equal(t, []string{"go"}, []string(stringsOrEmpty([]string{"go"})))
}
