package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindSurvivesWrapping(t *testing.T) {
	base := Storage("create menu", errors.New("connection refused"))
	wrapped := fmt.Errorf("commit draft: %w", base)

	assert.Equal(t, KindStorage, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindStorage))
	assert.ErrorContains(t, wrapped, "connection refused")
}

func TestSentinelMatching(t *testing.T) {
	err := fmt.Errorf("lookup: %w", New(KindNotFound, "menu not found"))

	assert.ErrorIs(t, err, NotFound)
	assert.NotErrorIs(t, err, Conflict)
}

func TestInvalidCarriesField(t *testing.T) {
	err := Invalid("price", "must be a number")

	assert.Equal(t, "price", err.Field)
	assert.Equal(t, "price: must be a number (validation)", err.Error())
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("boom")))
}
