package animatedvector

import "testing"

type counter struct {
	start, end int
	last       *Drawable
}

func (c *counter) OnAnimationStart(d *Drawable) {
	c.start++
	c.last = d
}

func (c *counter) OnAnimationEnd(d *Drawable) {
	c.end++
	c.last = d
}

// selfRemover unregisters itself when the animation starts
type selfRemover struct {
	counter
	removed bool
}

func (s *selfRemover) OnAnimationStart(d *Drawable) {
	s.counter.OnAnimationStart(d)
	s.removed = d.UnregisterAnimationCallback(s)
}

func TestAnimationCallbacks(t *testing.T) {
	d := newTestState(t).NewDrawable()
	var c1, c2 counter
	d.RegisterAnimationCallback(&c1)
	d.RegisterAnimationCallback(&c2)
	d.RegisterAnimationCallback(nil)
	if n := len(d.AnimatorSet().Listeners()); n != 1 {
		t.Fatalf("expected one listener on the set, got %d", n)
	}

	d.Start()
	if c1.start != 1 || c2.start != 1 || c1.last != d {
		t.Errorf("unexpected start notifications %+v %+v", c1, c2)
	}
	d.Handler().DoFrame(0)
	d.Handler().DoFrame(ms(200))
	if c1.end != 1 || c2.end != 1 {
		t.Errorf("unexpected end notifications %+v %+v", c1, c2)
	}

	d.Start()
	d.Stop()
	if c1.start != 2 || c1.end != 2 {
		t.Errorf("stop should notify the end: %+v", c1)
	}
	d.Reset()
	if c1.start != 3 || c1.end != 3 {
		t.Errorf("reset should notify a start and an end: %+v", c1)
	}
}

func TestUnregisterAnimationCallback(t *testing.T) {
	d := newTestState(t).NewDrawable()
	var c counter
	d.RegisterAnimationCallback(&c)
	d.RegisterAnimationCallback(&c)
	d.Start()
	if c.start != 2 {
		t.Errorf("callbacks registered twice are notified twice, got %d", c.start)
	}
	d.Stop()

	if !d.UnregisterAnimationCallback(&c) {
		t.Error("callback should be removed")
	}
	if n := len(d.AnimatorSet().Listeners()); n != 1 {
		t.Errorf("listener should be kept while callbacks remain, got %d", n)
	}
	if !d.UnregisterAnimationCallback(&c) {
		t.Error("second occurrence should be removed")
	}
	if n := len(d.AnimatorSet().Listeners()); n != 0 {
		t.Errorf("listener should be removed with the last callback, got %d", n)
	}
	if d.UnregisterAnimationCallback(&c) || d.UnregisterAnimationCallback(nil) {
		t.Error("unknown callback should not be removed")
	}

	d.Start()
	d.Stop()
	if c.start != 2 || c.end != 2 {
		t.Errorf("unregistered callback should not be notified: %+v", c)
	}

	// registering again reattaches the listener
	d.RegisterAnimationCallback(&c)
	if n := len(d.AnimatorSet().Listeners()); n != 1 {
		t.Errorf("expected one listener, got %d", n)
	}
}

func TestClearAnimationCallbacks(t *testing.T) {
	d := newTestState(t).NewDrawable()
	var c1, c2 counter
	d.RegisterAnimationCallback(&c1)
	d.RegisterAnimationCallback(&c2)
	d.ClearAnimationCallbacks()
	if n := len(d.AnimatorSet().Listeners()); n != 0 {
		t.Errorf("listener should be removed, got %d", n)
	}
	d.Start()
	if c1.start != 0 || c2.start != 0 {
		t.Error("cleared callbacks should not be notified")
	}
	d.ClearAnimationCallbacks()
}

func TestCallbackRemovedDuringNotification(t *testing.T) {
	d := newTestState(t).NewDrawable()
	var (
		s selfRemover
		c counter
	)
	d.RegisterAnimationCallback(&s)
	d.RegisterAnimationCallback(&c)
	d.Start()
	if !s.removed || s.start != 1 {
		t.Errorf("callback should have removed itself: %+v", s)
	}
	if c.start != 1 {
		t.Error("remaining callbacks should be notified")
	}
	d.Stop()
	if s.end != 0 || c.end != 1 {
		t.Errorf("unexpected end notifications %+v %+v", s, c)
	}
}
