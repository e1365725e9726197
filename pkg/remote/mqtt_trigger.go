// Package remote starts animators from outside the process over MQTT.
//
// Messages arrive on paho's goroutines; they are queued and handed to the
// main loop through Drain so animators are only touched from one goroutine.
package remote

import (
	"fmt"
	"log"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/decker502/flipbook/pkg/config"
)

// queueSize 未处理启动请求的上限，超出时丢弃
const queueSize = 32

// Trigger 订阅启动主题，消息体为要启动的动画器名称（"*" 表示全部）
type Trigger struct {
	cfg     config.RemoteConfig
	client  mqtt.Client
	pending chan string
}

// NewTrigger 创建触发器，Broker 为空时返回 nil
func NewTrigger(cfg config.RemoteConfig) *Trigger {
	if cfg.Broker == "" {
		return nil
	}
	t := &Trigger{
		cfg:     cfg,
		pending: make(chan string, queueSize),
	}

	options := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetAutoReconnect(true).
		SetOnConnectHandler(t.handleOnConnect)
	t.client = mqtt.NewClient(options)
	return t
}

// Connect 连接 broker，订阅在连接成功回调中完成（断线重连后自动重新订阅）
func (t *Trigger) Connect() error {
	token := t.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return fmt.Errorf("timed out connecting to %s", t.cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", t.cfg.Broker, err)
	}
	return nil
}

func (t *Trigger) handleOnConnect(client mqtt.Client) {
	log.Printf("[Remote] Connected to %s, subscribing %s", t.cfg.Broker, t.cfg.Topic)
	token := client.Subscribe(t.cfg.Topic, 0, t.handleMessage)
	if token.Wait() && token.Error() != nil {
		log.Printf("[Remote] Error: subscribe %s failed: %v", t.cfg.Topic, token.Error())
	}
}

func (t *Trigger) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	log.Printf("[Remote] Received msg %d on %s: %s", msg.MessageID(), msg.Topic(), msg.Payload())
	t.enqueue(msg.Payload())
}

func (t *Trigger) enqueue(payload []byte) bool {
	name := strings.TrimSpace(string(payload))
	if name == "" {
		return false
	}
	select {
	case t.pending <- name:
		return true
	default:
		log.Printf("[Remote] Warning: queue full, dropping start request %q", name)
		return false
	}
}

// Drain 在主循环中调用，依次处理所有已收到的启动请求
func (t *Trigger) Drain(handle func(name string)) int {
	handled := 0
	for {
		select {
		case name := <-t.pending:
			handle(name)
			handled++
		default:
			return handled
		}
	}
}

// Close 断开连接
func (t *Trigger) Close() {
	if t.client != nil && t.client.IsConnected() {
		t.client.Disconnect(250)
	}
}
