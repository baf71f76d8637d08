package lectern

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestLoadTestScriptYAML(t *testing.T) {
	data := []byte(`
steps:
  - action: screenshot
    label: initial
  - action: key
    key: right
  - action: click
    x: 100
    y: 200
  - action: swipe
    fromX: 800
    fromY: 400
    toX: 500
    toY: 400
  - action: wait
    frames: 3
`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if runner.steps[1].Key != "right" {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].X != 100 || runner.steps[2].Y != 200 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].FromX != 800 || runner.steps[3].ToX != 500 {
		t.Error("step 3 mismatch")
	}
}

func TestLoadTestScriptJSON(t *testing.T) {
	data := []byte(`{"steps": [{"action": "key", "key": "ctrl+f"}, {"action": "wait", "frames": 2}]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(runner.steps))
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	tests := map[string]string{
		"malformed":      `steps: [`,
		"empty":          `{"steps": []}`,
		"unknown action": `{"steps": [{"action": "drag"}]}`,
		"unknown key":    `{"steps": [{"action": "key", "key": "banana"}]}`,
		"unknown mod":    `{"steps": [{"action": "key", "key": "hyper+f"}]}`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadTestScript([]byte(data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseScriptKey(t *testing.T) {
	k, mods, err := parseScriptKey(" Ctrl+F ")
	if err != nil || k != ebiten.KeyF || mods != ModCtrl {
		t.Errorf("ctrl+f = %v %v %v", k, mods, err)
	}
	k, mods, err = parseScriptKey("3")
	if err != nil || k != ebiten.KeyDigit3 || mods != 0 {
		t.Errorf("3 = %v %v %v", k, mods, err)
	}
}

func TestRunnerStepKey(t *testing.T) {
	s := NewScene()
	var got []KeyContext
	s.OnKey(func(ctx KeyContext) { got = append(got, ctx) })

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "key", "key": "cmd+f"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	runner.step(s)
	if runner.Done() {
		t.Error("runner should wait for the injected key to drain")
	}
	s.processInput()
	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done")
	}
	if len(got) != 1 || MapKey(got[0].Key, got[0].Modifiers).Kind != CommandToggleFullscreen {
		t.Errorf("keys = %+v", got)
	}
}

func TestRunnerStepClick(t *testing.T) {
	s := NewScene()
	clicks := 0
	rect := NewRect("r", 200, 200, ColorWhite)
	rect.Interactable = true
	rect.OnClick = func(ClickContext) { clicks++ }
	s.Root().AddChild(rect)
	s.FlushLayout()

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 50, "y": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	runner.step(s)
	if len(s.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(s.injectQueue))
	}
	s.processInput()
	s.processInput()
	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestRunnerStepWait(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "done"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		runner.step(s)
		if runner.Done() {
			t.Fatalf("done during wait at tick %d", i)
		}
	}
	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after screenshot step")
	}
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "done" {
		t.Errorf("expected screenshot 'done', got %v", s.screenshotQueue)
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "swipe", "fromX": 800, "fromY": 400, "toX": 500, "toY": 400},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(s)
	runner.step(s)
	if runner.cursor != 1 {
		t.Errorf("cursor should still be 1, got %d", runner.cursor)
	}
	s.processInput()
	runner.step(s)
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "after" {
		t.Errorf("expected screenshot 'after', got %v", s.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}
