package game

import "testing"

func TestTaskSet_ElapsedSinceAdded(t *testing.T) {
	ts := NewTaskSet()
	ts.SetTime(10)
	var got []float64
	ts.Add("probe", func(elapsed float64) TaskStatus {
		got = append(got, elapsed)
		return TaskCont
	})
	ts.Run(10)
	ts.Run(11.5)
	if len(got) != 2 || got[0] != 0 || got[1] != 1.5 {
		t.Fatalf("expected elapsed [0 1.5], got %v", got)
	}
}

func TestTaskSet_DoneAndRemove(t *testing.T) {
	ts := NewTaskSet()
	runs := 0
	ts.Add("once", func(float64) TaskStatus {
		runs++
		return TaskDone
	})
	ts.Add("forever", func(float64) TaskStatus { return TaskCont })
	ts.Run(0)
	ts.Run(1)
	if runs != 1 {
		t.Fatalf("expected done task to run once, ran %d", runs)
	}
	if ts.Has("once") || !ts.Has("forever") {
		t.Fatal("unexpected task membership after done")
	}
	if !ts.Remove("forever") || ts.Remove("forever") {
		t.Fatal("expected Remove to report the first removal only")
	}
	if ts.Len() != 0 {
		t.Fatalf("expected empty set, got %d", ts.Len())
	}
}

func TestTaskSet_RemovedMidRunIsSkipped(t *testing.T) {
	ts := NewTaskSet()
	ran := false
	ts.Add("killer", func(float64) TaskStatus {
		ts.Remove("victim")
		return TaskCont
	})
	ts.Add("victim", func(float64) TaskStatus {
		ran = true
		return TaskCont
	})
	ts.Run(0)
	if ran {
		t.Fatal("expected removed task to be skipped in the same run")
	}
}

func TestTaskSet_AddReplacesByName(t *testing.T) {
	ts := NewTaskSet()
	calls := ""
	ts.Add("a", func(float64) TaskStatus { calls += "1"; return TaskCont })
	ts.Add("a", func(float64) TaskStatus { calls += "2"; return TaskCont })
	ts.Run(0)
	if calls != "2" || ts.Len() != 1 {
		t.Fatalf("expected replacement, calls=%q len=%d", calls, ts.Len())
	}
}
