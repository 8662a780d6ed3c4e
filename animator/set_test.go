package animator

import "testing"

func TestSetTogether(t *testing.T) {
	h := NewHandler()
	tg := newTarget()
	a1 := NewFloat(tg, "x", 0, 100, ms(100))
	a2 := NewFloat(tg, "y", 0, 10, ms(200))
	set := NewSet(Sequentially)
	set.Play(a1).With(a2)
	set.SetHandler(h)
	var c, c1 counter
	set.AddListener(&c)
	a1.AddListener(&c1)

	if set.Ordering != Together || set.TotalDuration() != ms(200) {
		t.Errorf("unexpected set %v %s", set.Ordering, set.TotalDuration())
	}

	set.Start()
	if !set.IsRunning() || c.start != 1 || c1.start != 1 {
		t.Fatal("set should be running")
	}
	set.Start()
	if c.start != 1 {
		t.Error("start should be ignored while started")
	}
	h.DoFrame(0)
	h.DoFrame(ms(100))
	assertClose(t, tg.floats["x"], 100)
	assertClose(t, tg.floats["y"], 5)
	if c1.end != 1 || c.end != 0 || !set.IsRunning() {
		t.Error("set should wait for all its children")
	}
	h.DoFrame(ms(200))
	if c.end != 1 || set.IsRunning() || set.IsStarted() {
		t.Error("set should be over")
	}
}

func TestSetSequentially(t *testing.T) {
	h := NewHandler()
	tg := newTarget()
	a1 := NewFloat(tg, "x", 0, 100, ms(100))
	a2 := NewFloat(tg, "x", 100, 0, ms(100))
	set := NewSet(Together)
	set.PlaySequentially(a1, a2)
	set.SetHandler(h)
	var c counter
	set.AddListener(&c)
	if set.TotalDuration() != ms(200) {
		t.Errorf("unexpected duration %s", set.TotalDuration())
	}

	set.Start()
	if a2.IsStarted() {
		t.Error("second animator should wait")
	}
	h.DoFrame(0)
	h.DoFrame(ms(50))
	assertClose(t, tg.floats["x"], 50)
	h.DoFrame(ms(100))
	if !a2.IsStarted() || a1.IsStarted() {
		t.Error("second animator should be started")
	}
	h.DoFrame(ms(150)) // start time of a2
	assertClose(t, tg.floats["x"], 100)
	h.DoFrame(ms(200))
	assertClose(t, tg.floats["x"], 50)
	h.DoFrame(ms(250))
	assertClose(t, tg.floats["x"], 0)
	if c.end != 1 || set.IsStarted() {
		t.Error("set should be over")
	}
}

func TestSetEnd(t *testing.T) {
	h := NewHandler()
	tg := newTarget()
	a1 := NewFloat(tg, "x", 0, 100, ms(100))
	a2 := NewFloat(tg, "y", 0, 10, ms(100))
	set := NewSet(Sequentially)
	set.PlaySequentially(a1, a2)
	set.SetHandler(h)
	var c, c2 counter
	set.AddListener(&c)
	a2.AddListener(&c2)

	set.End()
	if c.end != 0 || c.start != 0 {
		t.Error("end should be ignored when not started")
	}

	set.Start()
	h.DoFrame(0)
	h.DoFrame(ms(50))
	set.End()
	assertClose(t, tg.floats["x"], 100)
	assertClose(t, tg.floats["y"], 10)
	if c.end != 1 || c2.start != 1 || c2.end != 1 {
		t.Errorf("unexpected notifications %v %v", c, c2)
	}
	if set.IsStarted() || h.Active() != 0 {
		t.Error("set should be over")
	}
}

func TestSetCancel(t *testing.T) {
	h := NewHandler()
	tg := newTarget()
	a1 := NewFloat(tg, "x", 0, 100, ms(100))
	set := NewSet(Together)
	set.PlayTogether(a1)
	set.SetHandler(h)
	var c counter
	set.AddListener(&c)

	set.Start()
	h.DoFrame(0)
	h.DoFrame(ms(20))
	set.Cancel()
	assertClose(t, tg.floats["x"], 20)
	if c.cancel != 1 || c.end != 1 || set.IsRunning() {
		t.Errorf("unexpected notifications %v", c)
	}
	set.Cancel()
	if c.cancel != 1 {
		t.Error("cancel should be ignored when not started")
	}
}

func TestSetClone(t *testing.T) {
	h := NewHandler()
	tg := newTarget()
	set := NewSet(Together)
	set.PlayTogether(NewFloat(nil, "x", 0, 100, ms(100)))
	var c counter
	set.AddListener(&c)

	cl := set.Clone().(*AnimatorSet)
	cl.SetTarget(tg)
	cl.SetHandler(h)
	if set.Children()[0].(*ObjectAnimator).Target() != nil {
		t.Error("clone should not share its children")
	}
	if len(cl.Listeners()) != 1 {
		t.Error("listeners should be copied")
	}
	cl.Start()
	h.DoFrame(0)
	h.DoFrame(ms(100))
	assertClose(t, tg.floats["x"], 100)
	if c.end != 1 || cl.IsStarted() {
		t.Error("cloned set should end")
	}
	if set.IsStarted() {
		t.Error("original set should not be started")
	}
}

func TestEmptySet(t *testing.T) {
	set := NewSet(Together)
	var c counter
	set.AddListener(&c)
	set.Start()
	if c.start != 1 || c.end != 1 || set.IsStarted() {
		t.Errorf("empty set should end immediately: %v", c)
	}
}
