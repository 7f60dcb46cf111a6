package main

import (
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nikhilbadyal/tracker/appconfig"
	"github.com/nikhilbadyal/tracker/handlers"
	"github.com/nikhilbadyal/tracker/logging"
	"github.com/nikhilbadyal/tracker/meta"
	"github.com/nikhilbadyal/tracker/metrics"
	"github.com/nikhilbadyal/tracker/middleware"
	"github.com/nikhilbadyal/tracker/safego"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
)

const trackPath = "/api/v1/track"

var (
	configFilePath   = flag.String("cfg", "", "config file path")
	containerizedRun = flag.Bool("cr", false, "containerised run marker")
)

func readInViperConfig() error {
	flag.Parse()
	viper.AutomaticEnv()
	//support OS env variables as lower case and dot divided variables e.g. SERVER_PORT as server.port
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	//custom config
	viper.SetConfigFile(*configFilePath)
	if err := viper.ReadInConfig(); err != nil {
		//failfast for running service from source (not containerised) and with wrong config
		if viper.ConfigFileUsed() != "" && !*containerizedRun {
			return err
		} else {
			log.Println("Custom tracker.yaml wasn't provided")
		}
	}
	return nil
}

func main() {
	//Setup seed for globalRand
	rand.Seed(time.Now().Unix())

	//Setup default timezone for time.Now() calls
	time.Local = time.UTC

	if err := readInViperConfig(); err != nil {
		log.Fatal("Error while reading application config: ", err)
	}

	if err := appconfig.Init(); err != nil {
		log.Fatal(err)
	}

	safego.GlobalRecoverHandler = func(value interface{}) {
		logging.Error("panic:", value)
	}

	//listen to shutdown signal to free up all resources
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)
	go func() {
		<-c
		if err := appconfig.Instance.Close(); err != nil {
			logging.Error("Error closing resources:", err)
		}
		time.Sleep(1 * time.Second)
		os.Exit(0)
	}()

	storage, err := meta.NewStorage(viper.Sub("meta"))
	if err != nil {
		logging.Fatalf("Error initializing meta storage: %v", err)
	}
	logging.Infof("Meta storage: %s", storage.Type())
	appconfig.Instance.ScheduleClosing(storage)

	router := SetupRouter(storage)

	logging.Info("Started server:", appconfig.Instance.Authority)
	server := &http.Server{
		Addr:              appconfig.Instance.Authority,
		Handler:           router,
		ReadTimeout:       time.Second * 60,
		ReadHeaderTimeout: time.Second * 60,
		IdleTimeout:       time.Second * 65,
	}
	logging.Fatal(server.ListenAndServe())
}

func SetupRouter(storage meta.Storage) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New() //gin.Default()
	router.Use(gin.Recovery(), middleware.SecurityHeaders())

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		//Allow names the ingestion path's method set, don't misstate it elsewhere
		if c.Request.URL.Path != trackPath {
			c.AbortWithStatus(http.StatusMethodNotAllowed)
			return
		}
		metrics.RejectedEvent(middleware.ErrMethodNotAllowed)
		c.Header("Allow", "POST, OPTIONS")
		c.JSON(http.StatusMethodNotAllowed, middleware.ErrResponse(middleware.ErrMethodNotAllowed))
	})
	router.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	//health check bypasses every gate regardless of method or origin
	router.Any("/status", handlers.StatusHandler)
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	trackHandler := handlers.NewTrackHandler(storage, appconfig.Instance.GeoResolver)
	allowedOrigins := appconfig.Instance.AllowedOrigins

	router.POST(trackPath, middleware.OriginAuth(middleware.ClientIPAuth(trackHandler.Handler, appconfig.Instance.TrustedIPHeader), allowedOrigins))
	router.OPTIONS(trackPath, middleware.Preflight(allowedOrigins))

	if metrics.Enabled {
		router.GET("/prometheus", middleware.TokenAuth(gin.WrapH(promhttp.Handler()), viper.GetString("server.admin_token")))
	}

	return router
}
