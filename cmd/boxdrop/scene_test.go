package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/setanarut/collide"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSceneSettles(t *testing.T) {
	scene, err := LoadScene("")
	require.NoError(t, err)

	w, err := collide.NewWorld(nil)
	require.NoError(t, err)
	entities, err := scene.Build(w)
	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.Equal(t, 2, w.Registry().ColliderCount())
	assert.Equal(t, 1, w.Registry().BodyCount())

	s := collide.NewStepper(w)
	for range 180 {
		s.Advance(1.0 / 60)
	}
	box, ok := w.Registry().BodyOf(entities[0])
	require.True(t, ok)
	assert.True(t, box.IsSleeping())
	assert.InDelta(t, 1.0, box.Position().Y, 1e-6)
}

func TestParseSceneErrors(t *testing.T) {
	_, err := ParseScene([]byte("entities: []\n"))
	assert.Error(t, err)

	_, err = ParseScene([]byte("entities:\n  - body: {type: floating}\n"))
	assert.ErrorContains(t, err, "unknown body type")

	scene, err := ParseScene([]byte(`
entities:
  - name: wedge
    collider: {shape: polygon, vertices: [{x: 0, y: 0}, {x: 1, y: 0}, {x: 2, y: 0}]}
`))
	require.NoError(t, err)
	w, err := collide.NewWorld(nil)
	require.NoError(t, err)
	_, err = scene.Build(w)
	assert.ErrorIs(t, err, collide.ErrDegenerateShape)
}

func TestSceneTriggerAndMaterial(t *testing.T) {
	scene, err := ParseScene([]byte(`
entities:
  - name: ball
    position: {x: 0, y: 3}
    body: {type: dynamic, mass: 2, no_sleep: true}
    collider:
      size: {x: 1, y: 1}
      material: {restitution: 0.5, static_friction: 0.1, dynamic_friction: 0.1, density: 1}
  - name: goal
    collider: {size: {x: 4, y: 4}, trigger: true}
`))
	require.NoError(t, err)
	w, err := collide.NewWorld(nil)
	require.NoError(t, err)
	entities, err := scene.Build(w)
	require.NoError(t, err)

	ball := w.Registry().CollidersOf(entities[0])[0]
	goal := w.Registry().CollidersOf(entities[1])[0]
	assert.Equal(t, 0.5, ball.Material.Restitution)
	assert.False(t, ball.Body.CanSleep)
	assert.True(t, goal.IsTrigger)
	assert.Nil(t, goal.Body)
}

func TestCanvasDrawsWorld(t *testing.T) {
	scene, err := LoadScene("")
	require.NoError(t, err)
	w, err := collide.NewWorld(nil)
	require.NoError(t, err)
	_, err = scene.Build(w)
	require.NoError(t, err)
	for range 80 {
		w.Step()
	}

	canvas := NewCanvas(40, 12, 0.25)
	canvas.Fit(w)
	w.Draw(canvas)

	var buf bytes.Buffer
	_, err = canvas.WriteTo(&buf)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 12)
	assert.Contains(t, buf.String(), "#")
	assert.Contains(t, buf.String(), "*", "the resting contact is drawn")
}

func TestSceneMassFromDensity(t *testing.T) {
	scene, err := ParseScene([]byte(`
entities:
  - name: crate
    body: {type: dynamic}
    collider: {size: {x: 2, y: 1}, material: {density: 3}}
  - name: rubber
    collider: {size: {x: 1, y: 1}, material: {restitution: -1}}
`))
	require.NoError(t, err)
	w, err := collide.NewWorld(nil)
	require.NoError(t, err)

	_, err = scene.Build(w)
	assert.ErrorIs(t, err, collide.ErrInvalidMaterial)
	assert.ErrorContains(t, err, "rubber")

	var masses []float64
	for b := range w.Registry().Bodies() {
		masses = append(masses, b.Mass())
	}
	assert.Equal(t, []float64{6}, masses)
}
