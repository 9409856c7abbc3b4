package stream

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config is the YAML configuration of the animation streamer.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Topics   struct {
			Stream  string `yaml:"stream"`
			Control string `yaml:"control"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	FrameRate  float64           `yaml:"frameRate"`
	Cycle      Duration          `yaml:"cycle"`
	Preview    bool              `yaml:"preview"`
	Listen     string            `yaml:"listen"`
	Animations []AnimationConfig `yaml:"animations"`
}

// AnimationConfig declares one animation and the properties it drives.
type AnimationConfig struct {
	Name     string   `yaml:"name"`
	Duration Duration `yaml:"duration"`
	Easing   struct {
		Fn   string `yaml:"fn"`
		Mode string `yaml:"mode"`
	} `yaml:"easing"`
	Repeat      Repeat                `yaml:"repeat"`
	Fill        string                `yaml:"fill"`
	AutoReverse bool                  `yaml:"autoReverse"`
	Props       map[string]PropConfig `yaml:"props"`
}

// PropConfig is the start value and the list of targets of one property.
// The controller moves to the next target on every cycle.
type PropConfig struct {
	From string  `yaml:"from"`
	To   Targets `yaml:"to"`
}

// Duration is a time.Duration written as "1.5s" or "300ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrapf(err, "duration %q", s)
	}
	*d = Duration(v)
	return nil
}

// Repeat is a pass count or the word "forever".
type Repeat struct {
	Times   int
	Forever bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Repeat) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "forever" {
		*r = Repeat{Forever: true}
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.Wrapf(err, "repeat %q", s)
	}
	*r = Repeat{Times: n}
	return nil
}

// Targets accepts a single scalar or a list of scalars.
type Targets []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Targets) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var list []string
	if err := unmarshal(&list); err == nil {
		*t = list
		return nil
	}
	var one string
	if err := unmarshal(&one); err != nil {
		return err
	}
	*t = Targets{one}
	return nil
}

// ReadConfig decodes a Config and fills in defaults.
func ReadConfig(r io.Reader) (Config, error) {
	var c Config
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if c.FrameRate <= 0 {
		c.FrameRate = 30
	}
	if c.Cycle <= 0 {
		c.Cycle = Duration(5 * time.Second)
	}
	if c.Mqtt.Topics.Stream == "" {
		c.Mqtt.Topics.Stream = "floem/stream"
	}
	return c, nil
}

// LoadConfig reads the Config stored at path.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "open config")
	}
	defer f.Close()
	return ReadConfig(f)
}
