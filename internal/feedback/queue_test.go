package feedback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueRunsReinforcement(t *testing.T) {
	q := ruleResult()
	l := &fakeLearner{target: q, agreeAfter: 1}
	queue := NewQueue(NewReinforcer(l, 3, 4, nil), 8, nil)
	queue.Start(context.Background())

	queue.Submit(context.Background(), sampleText, q)
	queue.Close()

	assert.Equal(t, 1, l.trainCount())
}

func TestQueueDropsWhenFull(t *testing.T) {
	q := ruleResult()
	l := &fakeLearner{target: q, agreeAfter: -1}
	queue := NewQueue(NewReinforcer(l, 1, 1, nil), 1, nil)

	for range 3 {
		queue.Submit(context.Background(), sampleText, q)
	}
	assert.Equal(t, 1, queue.Len())

	queue.Close()
	queue.Close()
	queue.Submit(context.Background(), sampleText, q)
	assert.Zero(t, l.trainCount())
}

func TestQueueIgnoresIneligible(t *testing.T) {
	q := ruleResult()
	q.ContainerConfidence = 0.5
	queue := NewQueue(NewReinforcer(&fakeLearner{agreeAfter: -1}, 1, 1, nil), 4, nil)
	queue.Submit(context.Background(), sampleText, q)
	assert.Zero(t, queue.Len())
	queue.Close()
}
