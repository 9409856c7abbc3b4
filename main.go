package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/presiyan-ivanov/floem/api"
	"github.com/presiyan-ivanov/floem/preview"
	"github.com/presiyan-ivanov/floem/reactive"
	"github.com/presiyan-ivanov/floem/stream"
)

type app struct {
	Config   stream.Config
	Client   mqtt.Client
	Streamer *stream.Streamer
	Remote   *stream.Remote
}

func newApp() *app {
	a := new(app)
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
	if err := a.Remote.Subscribe(); err != nil {
		log.Println(err)
	}
}

func (a *app) run(ctx context.Context) {
	if a.Client != nil {
		if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
			panic(token.Error())
		}
		defer a.Client.Disconnect(250)
	}
	a.Streamer.Run(ctx)
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	showPreview := flag.Bool("preview", false, "Draw frames in the terminal.")
	flag.Parse()

	// Read the config
	a := newApp()
	config, err := stream.LoadConfig(*configPath)
	if err != nil {
		panic(err)
	}
	a.Config = config
	log.Printf("Config: %+v", a.Config)

	controller, err := stream.NewController(a.Config.Animations, reactive.NewRuntime())
	if err != nil {
		panic(err)
	}

	var sinks []stream.Sink
	if a.Config.Mqtt.URL != "" {
		options := mqtt.NewClientOptions().
			AddBroker(a.Config.Mqtt.URL).
			SetClientID("floem").
			SetUsername(a.Config.Mqtt.Username).
			SetPassword(a.Config.Mqtt.Password).
			SetKeepAlive(30 * time.Second).
			SetPingTimeout(5 * time.Second).
			SetOnConnectHandler(a.handleOnConnect)
		a.Client = mqtt.NewClient(options)
		sinks = append(sinks, stream.NewMqttSink(a.Client, a.Config.Mqtt.Topics.Stream))
	}

	if a.Config.Listen != "" {
		server := api.NewApi("client/dist")
		sinks = append(sinks, server)
		go func() {
			if err := server.Serve(a.Config.Listen); err != nil {
				log.Println(err)
			}
		}()
	}

	if *showPreview || a.Config.Preview {
		screen, err := preview.New()
		if err != nil {
			panic(err)
		}
		defer screen.Close()
		sinks = append(sinks, screen)
	}

	a.Streamer = stream.NewStreamer(controller, a.Config.FrameRate, time.Duration(a.Config.Cycle), sinks...)
	if a.Client != nil {
		a.Remote = stream.NewRemote(a.Client, a.Config.Mqtt.Topics.Control, a.Streamer.Control())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	a.run(ctx)
}
