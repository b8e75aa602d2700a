package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRMAStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, StatusProcessing.CanTransitionTo(StatusInServiceCentre))
	assert.True(t, StatusInServiceCentre.CanTransitionTo(StatusReady))
	assert.True(t, StatusReady.CanTransitionTo(StatusDelivered))

	// Назад и через ступень нельзя.
	assert.False(t, StatusProcessing.CanTransitionTo(StatusReady))
	assert.False(t, StatusInServiceCentre.CanTransitionTo(StatusProcessing))
	assert.False(t, StatusReady.CanTransitionTo(StatusInServiceCentre))
	assert.False(t, StatusDelivered.CanTransitionTo(StatusProcessing))
	assert.False(t, StatusDelivered.CanTransitionTo(StatusReady))
}

func TestNewRMAStatus(t *testing.T) {
	status, err := NewRMAStatus("ready")
	assert.NoError(t, err)
	assert.Equal(t, StatusReady, status)

	_, err = NewRMAStatus("shipped")
	assert.Error(t, err)

	_, err = NewRMAStatus("")
	assert.Error(t, err)
}
