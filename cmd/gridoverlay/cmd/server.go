package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimfeld/httptreemux"
	"github.com/go-spatial/gridoverlay/config"
	"github.com/go-spatial/gridoverlay/server"
	"github.com/prometheus/common/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var (
	// Server is the command to start up the api server
	Server = &cobra.Command{
		Use:     "serve",
		Short:   "Serve grid overlays over http",
		Aliases: []string{"server"},
		Long: `Serve grid overlays over http. Grids are listed at /grids and each
grid is available as /grids/:name/geojson, /grids/:name/svg and /grids/:name/attributes.
Prometheus metrics are exposed at /metrics.`,
		RunE: serverCmdRunE,
	}

	port string
)

func init() {
	Server.Flags().StringVar(&port, "port", config.DefaultPort, "port to start the server on")
}

func newServer(ws config.Webserver, listenOn string) *server.Server {
	srv := &server.Server{
		Hostname: ws.HostName,
		Port:     listenOn,
		Scheme:   ws.Scheme,
		Headers:  make(map[string]string, len(ws.Headers)),
	}
	for name, val := range ws.Headers {
		if val == "" {
			log.Warnf("webserver header %q has no value, ignoring", name)
			continue
		}
		srv.Headers[name] = val
	}
	return srv
}

func serverCmdRunE(cmd *cobra.Command, args []string) error {
	conf, o, err := loadOverlay()
	if err != nil {
		return err
	}

	listenOn := port
	if !cmd.Flag("port").Changed && conf.Webserver.Port != "" {
		listenOn = conf.Webserver.Port
	}
	srv := newServer(conf.Webserver, listenOn)
	srv.Overlay = o

	router := httptreemux.New()
	srv.RegisterRoutes(router)
	hsrv := &http.Server{Addr: listenOn, Handler: router}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	errch := make(chan error, 1)
	go func() { errch <- hsrv.ListenAndServe() }()
	log.Infof("serving %v grids on %v", len(o.Grids()), listenOn)

	select {
	case err = <-errch:
	case sig := <-sigs:
		log.Infof("got %v, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err = hsrv.Shutdown(ctx)
	}
	if err == nil || err == http.ErrServerClosed {
		return nil
	}
	return ErrExitWith{
		Err:      err,
		Msg:      "server failed",
		ExitCode: 1,
	}
}
