package viewer

import (
	"errors"
	"sync"
	"testing"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	for _, path := range []string{"a.obj", "b.obj", "c.obj"} {
		if err := q.Push(Command{Kind: CmdLoadModel, Path: path}); err != nil {
			t.Fatalf("Push: %v", err)
		}
	}

	cmds := q.Drain()
	if len(cmds) != 3 {
		t.Fatalf("Drain returned %d commands, want 3", len(cmds))
	}
	for i, want := range []string{"a.obj", "b.obj", "c.obj"} {
		if cmds[i].Path != want {
			t.Errorf("cmds[%d].Path = %q, want %q", i, cmds[i].Path, want)
		}
	}
}

func TestQueueDrainEmpties(t *testing.T) {
	q := NewQueue()
	q.Push(Command{Kind: CmdQuit})
	q.Drain()

	if got := q.Drain(); got != nil {
		t.Errorf("second Drain returned %d commands, want none", len(got))
	}
}

func TestQueuePushAfterClose(t *testing.T) {
	q := NewQueue()
	q.Push(Command{Kind: CmdQuit})
	q.Close()

	err := q.Push(Command{Kind: CmdSetWireframe, On: true})
	if !errors.Is(err, ErrQueueClosed) {
		t.Errorf("Push after Close = %v, want ErrQueueClosed", err)
	}
	if got := q.Drain(); got != nil {
		t.Errorf("Drain after Close returned %d commands, want none", len(got))
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()

	const producers = 8
	const perProducer = 100

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(Command{Kind: CmdSetUI})
			}
		}()
	}
	wg.Wait()

	if got := len(q.Drain()); got != producers*perProducer {
		t.Errorf("drained %d commands, want %d", got, producers*perProducer)
	}
}
