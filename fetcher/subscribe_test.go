package fetcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe_ReceivesCurrentStateFirst(t *testing.T) {
	c := newTestController(&fakeSource{seq: []fakeResult{{}}}, &fakeSleeper{})
	c.AddMovie("A", "", "")

	ch, unsubscribe := c.Subscribe()
	defer unsubscribe()

	select {
	case state := <-ch:
		assert.Equal(t, StatusIdle, state.Status)
		assert.Len(t, state.Movies, 1)
	case <-time.After(time.Second):
		t.Fatal("no initial snapshot")
	}
}

func TestSubscribe_SlowReaderSeesLatestState(t *testing.T) {
	c := newTestController(&fakeSource{seq: []fakeResult{{films: sampleFilms(3)}}}, &fakeSleeper{})

	ch, unsubscribe := c.Subscribe()
	defer unsubscribe()

	// Several transitions happen without the reader draining
	require.NoError(t, c.Fetch(context.Background()))
	c.AddMovie("extra", "", "")

	state := <-ch
	assert.Equal(t, StatusSucceeded, state.Status)
	assert.Len(t, state.Movies, 4)

	select {
	case extra := <-ch:
		t.Fatalf("unexpected buffered snapshot: %+v", extra)
	default:
	}
}

func TestSubscribe_UnsubscribeClosesChannel(t *testing.T) {
	c := newTestController(&fakeSource{seq: []fakeResult{{}}}, &fakeSleeper{})

	ch, unsubscribe := c.Subscribe()
	<-ch
	unsubscribe()
	unsubscribe()

	_, ok := <-ch
	assert.False(t, ok)

	// Publishing after unsubscribe must not panic
	c.CancelRetry()
}
