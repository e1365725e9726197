package remote

import (
	"testing"

	"github.com/decker502/flipbook/pkg/config"
)

func newTestTrigger(t *testing.T) *Trigger {
	t.Helper()
	trigger := NewTrigger(config.RemoteConfig{
		Broker:   "tcp://127.0.0.1:1883",
		ClientID: "flipbook-test",
		Topic:    "flipbook/start",
	})
	if trigger == nil {
		t.Fatal("NewTrigger returned nil for a configured broker")
	}
	return trigger
}

// TestNewTriggerDisabled 测试未配置 broker 时不创建触发器
func TestNewTriggerDisabled(t *testing.T) {
	if NewTrigger(config.RemoteConfig{}) != nil {
		t.Error("empty broker should disable the trigger")
	}
}

// TestTriggerDrainOrder 测试按到达顺序交给主循环
func TestTriggerDrainOrder(t *testing.T) {
	trigger := newTestTrigger(t)
	trigger.enqueue([]byte("intro\n"))
	trigger.enqueue([]byte("  "))
	trigger.enqueue([]byte("*"))

	var got []string
	n := trigger.Drain(func(name string) { got = append(got, name) })

	if n != 2 || len(got) != 2 || got[0] != "intro" || got[1] != "*" {
		t.Errorf("Drain: got %d %v, want [intro *]", n, got)
	}
	if trigger.Drain(func(string) { t.Error("queue should be empty") }) != 0 {
		t.Error("second Drain should handle nothing")
	}
}

// TestTriggerQueueFull 测试队列满时丢弃新请求
func TestTriggerQueueFull(t *testing.T) {
	trigger := newTestTrigger(t)
	for i := 0; i < queueSize; i++ {
		if !trigger.enqueue([]byte("a")) {
			t.Fatalf("enqueue %d should succeed", i)
		}
	}
	if trigger.enqueue([]byte("b")) {
		t.Error("enqueue beyond capacity should be dropped")
	}
	if n := trigger.Drain(func(string) {}); n != queueSize {
		t.Errorf("Drain: got %d, want %d", n, queueSize)
	}
}
