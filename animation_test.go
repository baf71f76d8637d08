package lectern

import (
	"math"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	node := NewContainer("pos")
	node.X = 10
	node.Y = 20

	g := TweenPosition(node, 100, 200, time.Second, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(node.X-100) > 0.5 {
		t.Errorf("X = %f, want ~100", node.X)
	}
	if math.Abs(node.Y-200) > 0.5 {
		t.Errorf("Y = %f, want ~200", node.Y)
	}
}

func TestTweenAlphaInterpolates(t *testing.T) {
	node := NewContainer("alpha")
	node.Alpha = 1.0

	tw := TweenAlpha(node, 0.0, time.Second, ease.Linear)

	tw.Update(0.5)
	if tw.Done {
		t.Fatal("should not be done at halfway")
	}
	if math.Abs(node.Alpha-0.5) > 0.05 {
		t.Errorf("Alpha = %f, want ~0.5 at halfway", node.Alpha)
	}

	tw.Update(0.5)
	if !tw.Done {
		t.Fatal("should be done after full duration")
	}
	if math.Abs(node.Alpha) > 0.01 {
		t.Errorf("Alpha = %f, want ~0.0", node.Alpha)
	}
}

func TestTweenAlphaYMovesBoth(t *testing.T) {
	node := NewContainer("chrome")
	node.Y = 0

	g := TweenAlphaY(node, 0, 80, 500*time.Millisecond, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done")
	}
	if math.Abs(node.Alpha) > 0.01 || math.Abs(node.Y-80) > 0.5 {
		t.Errorf("alpha=%f y=%f, want 0 and 80", node.Alpha, node.Y)
	}
}

func TestTweenValueDrivesRingProgress(t *testing.T) {
	ring := NewRing("ring", 100, 10, ColorWhite)
	g := TweenValue(ring, &ring.Ring.Progress, 0.7, 2*time.Second, ease.Linear)

	g.Update(1)
	if math.Abs(ring.Ring.Progress-0.35) > 0.01 {
		t.Errorf("Progress = %f at halfway, want ~0.35", ring.Ring.Progress)
	}
	g.Update(1)
	if !g.Done || math.Abs(ring.Ring.Progress-0.7) > 0.001 {
		t.Errorf("Progress = %f done=%v, want 0.7 and done", ring.Ring.Progress, g.Done)
	}
}

func TestTweenGroupOnCompleteRunsOnce(t *testing.T) {
	node := NewContainer("complete")
	g := TweenPosition(node, 50, 50, 500*time.Millisecond, ease.Linear)

	calls := 0
	g.OnComplete = func() { calls++ }

	g.Update(0.25)
	if calls != 0 {
		t.Fatal("OnComplete ran before the group finished")
	}
	g.Update(0.25)
	g.Update(0.1)
	if calls != 1 {
		t.Fatalf("OnComplete ran %d times, want 1", calls)
	}
}

func TestTweenGroupCancelSkipsOnComplete(t *testing.T) {
	node := NewContainer("cancel")
	g := TweenAlpha(node, 0, time.Second, ease.Linear)

	called := false
	g.OnComplete = func() { called = true }

	g.Update(0.2)
	g.Cancel()
	if !g.Update(0.9) {
		t.Fatal("cancelled group should report done")
	}
	if called {
		t.Error("OnComplete ran for a cancelled group")
	}
}

func TestTweenGroupMarksDirty(t *testing.T) {
	node := NewContainer("dirty")
	node.transformDirty = false

	g := TweenPosition(node, 100, 100, time.Second, ease.Linear)
	g.Update(0.1)

	if !node.transformDirty {
		t.Fatal("expected node to be marked dirty after TweenGroup update")
	}
}

func TestTweenGroupDisposedNode(t *testing.T) {
	node := NewContainer("disposed")
	node.X = 10
	node.Y = 20

	g := TweenPosition(node, 100, 200, time.Second, ease.Linear)
	node.Dispose()

	g.Update(0.1)

	if !g.Done {
		t.Fatal("expected Done after disposed node detected")
	}
	if node.X != 10 || node.Y != 20 {
		t.Errorf("disposed node moved to (%f, %f)", node.X, node.Y)
	}
}

func TestTweenEasingFunctionsProduceDifferentCurves(t *testing.T) {
	nodeL := NewContainer("linear")
	nodeC := NewContainer("cubic")

	gL := TweenPosition(nodeL, 100, 0, time.Second, ease.Linear)
	gC := TweenPosition(nodeC, 100, 0, time.Second, ease.OutCubic)

	gL.Update(0.5)
	gC.Update(0.5)

	if math.Abs(nodeL.X-nodeC.X) < 1.0 {
		t.Errorf("easing curves should differ at midpoint: linear=%f cubic=%f", nodeL.X, nodeC.X)
	}
}

func TestTweenGroupUpdateZeroAlloc(t *testing.T) {
	node := NewContainer("alloc")
	g := TweenPosition(node, 100, 100, time.Second, ease.Linear)

	g.Update(0.01)

	result := testing.AllocsPerRun(100, func() {
		g.Update(0.001)
	})
	if result > 0 {
		t.Errorf("TweenGroup.Update allocated %f times per run, want 0", result)
	}
}
