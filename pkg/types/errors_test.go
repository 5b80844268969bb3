package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    error
		wantMsg string
	}{
		{
			name:    "duplicate references the ID",
			err:     DuplicateItem(OpInsert, 101),
			kind:    ErrDuplicateItem,
			wantMsg: "item with ID 101 already exists",
		},
		{
			name:    "not found references the ID",
			err:     ItemNotFound(OpRemove, 999),
			kind:    ErrItemNotFound,
			wantMsg: "item with ID 999 not found",
		},
		{
			name:    "invalid quantity references the value",
			err:     InvalidQuantity(OpUpdateQuantity, 102, -5),
			kind:    ErrInvalidQuantity,
			wantMsg: "quantity -5 for item with ID 102 cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
			assert.ErrorIs(t, tt.err, tt.kind)
			assert.True(t, IsItemError(tt.err))
		})
	}
}

func TestItemErrorSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("restock: %w", ItemNotFound(OpGet, 7))

	assert.ErrorIs(t, wrapped, ErrItemNotFound)
	assert.NotErrorIs(t, wrapped, ErrDuplicateItem)

	var ie *ItemError
	if assert.True(t, errors.As(wrapped, &ie)) {
		assert.Equal(t, 7, ie.ID)
		assert.Equal(t, OpGet, ie.Op)
	}
}

func TestIsItemErrorRejectsOtherErrors(t *testing.T) {
	assert.False(t, IsItemError(nil))
	assert.False(t, IsItemError(errors.New("disk full")))
	assert.False(t, IsItemError(ErrDetached))
}
