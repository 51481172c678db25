package collide_test

import (
	"testing"

	"github.com/setanarut/collide"
	"github.com/stretchr/testify/assert"
)

func TestEventKind(t *testing.T) {
	tests := []struct {
		kind    collide.EventKind
		name    string
		trigger bool
	}{
		{collide.EventCollisionEnter, "CollisionEnter", false},
		{collide.EventCollisionStay, "CollisionStay", false},
		{collide.EventCollisionExit, "CollisionExit", false},
		{collide.EventTriggerEnter, "TriggerEnter", true},
		{collide.EventTriggerStay, "TriggerStay", true},
		{collide.EventTriggerExit, "TriggerExit", true},
		{collide.EventSleep, "Sleep", false},
		{collide.EventWake, "Wake", false},
		{collide.EventKind(42), "Unknown", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.kind.String())
			assert.Equal(t, tt.trigger, tt.kind.IsTrigger())
		})
	}
}
