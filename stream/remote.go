package stream

import (
	"encoding/json"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
)

// Control message types.
const (
	ControlRetarget = "retarget"
	ControlRestart  = "restart"
	ControlStop     = "stop"
	ControlCycle    = "cycle"
)

// ControlMessage arrives as JSON on the control topic, e.g.
//
//	{"type": "retarget", "animation": "box", "prop": "width", "value": "150"}
type ControlMessage struct {
	Type      string `json:"type"`
	Animation string `json:"animation"`
	Prop      string `json:"prop"`
	Value     string `json:"value"`
}

// DecodeControl parses a control payload.
func DecodeControl(payload []byte) (ControlMessage, error) {
	var m ControlMessage
	if err := json.Unmarshal(payload, &m); err != nil {
		return ControlMessage{}, errors.Wrap(err, "decode control message")
	}
	if (m.Type == "" || m.Type == ControlRetarget) && (m.Animation == "" || m.Prop == "") {
		return ControlMessage{}, errors.New("retarget needs an animation and a prop")
	}
	return m, nil
}

// Remote subscribes to the control topic and forwards messages to the
// streamer's loop.
type Remote struct {
	client mqtt.Client
	topic  string
	out    chan<- ControlMessage
}

// NewRemote creates a Remote delivering to out.
func NewRemote(client mqtt.Client, topic string, out chan<- ControlMessage) *Remote {
	r := new(Remote)
	r.client = client
	r.topic = topic
	r.out = out
	return r
}

func (r *Remote) handleClientMessages(client mqtt.Client, msg mqtt.Message) {
	log.Printf("Received msg %d on %s: %s", msg.MessageID(), msg.Topic(), msg.Payload())

	m, err := DecodeControl(msg.Payload())
	if err != nil {
		log.Println(err)
		return
	}
	select {
	case r.out <- m:
	default:
		log.Printf("Control queue full, dropping %+v", m)
	}
}

// Subscribe starts listening on the control topic.
func (r *Remote) Subscribe() error {
	if r.topic == "" {
		return nil
	}
	token := r.client.Subscribe(r.topic, 0, r.handleClientMessages)
	if token.Wait() && token.Error() != nil {
		return errors.Wrapf(token.Error(), "subscribe %s", r.topic)
	}
	log.Printf("Subscribed to %s", r.topic)
	return nil
}

// MqttSink publishes binary frames to a topic.
type MqttSink struct {
	client mqtt.Client
	topic  string
}

// NewMqttSink creates a sink publishing on topic.
func NewMqttSink(client mqtt.Client, topic string) *MqttSink {
	s := new(MqttSink)
	s.client = client
	s.topic = topic
	return s
}

// Show publishes f. Frames are dropped while the client is disconnected.
func (s *MqttSink) Show(f *Frame) error {
	if !s.client.IsConnected() {
		return nil
	}
	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	token := s.client.Publish(s.topic, 0, false, b)
	token.Wait()
	return errors.Wrapf(token.Error(), "publish %s", s.topic)
}
