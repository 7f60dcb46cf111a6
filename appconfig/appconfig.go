package appconfig

import (
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/nikhilbadyal/tracker/geo"
	"github.com/nikhilbadyal/tracker/logging"
	"github.com/nikhilbadyal/tracker/metrics"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

//AppConfig is constructed once at process start and never mutated afterwards
type AppConfig struct {
	ServerName string
	Authority  string

	AllowedOrigins  map[string]bool
	TrustedIPHeader string
	CountryHeader   string

	RateLimitWindowSeconds int
	RateLimitCeiling       int
	VisitTTLSeconds        int
	MaxEntryBytes          int

	GeoResolver geo.Resolver

	closeMe []io.Closer
}

var (
	Instance *AppConfig
)

func setDefaultParams() {
	viper.SetDefault("server.name", "tracker")
	viper.SetDefault("server.port", "8001")
	viper.SetDefault("server.log.rotation_min", 5)
	viper.SetDefault("server.allowed_origins", []string{
		"https://www.nikhilbadyal.com",
		"https://nikhilbadyal.pages.dev",
		"https://nikhilbadyal.vercel.app",
		"https://nikhilbadyal.netlify.app",
		"https://nikhilbadyal.surge.sh",
	})
	viper.SetDefault("server.trusted_ip_header", "CF-Connecting-IP")
	viper.SetDefault("server.country_header", "CF-IPCountry")
	viper.SetDefault("ratelimit.window_sec", 60)
	viper.SetDefault("ratelimit.max_per_window", 100)
	viper.SetDefault("retention.visit_ttl_sec", 60*60*24*30)
	viper.SetDefault("limits.max_entry_bytes", 24*1024*1024)
	viper.SetDefault("geo.maxmind_path", "")
	viper.SetDefault("metrics.enabled", false)
}

func Init() error {
	setDefaultParams()

	serverName := viper.GetString("server.name")

	//Global logger writes to stdout and, if configured, into a rolling file as well
	logFileDir := viper.GetString("server.log.path")
	if logFileDir != "" {
		if err := logging.EnsureDir(logFileDir); err != nil {
			return err
		}
		fileWriter, err := logging.NewRollingWriter(logging.Config{
			FileName:    serverName + "-main",
			FileDir:     logFileDir,
			RotationMin: viper.GetInt64("server.log.rotation_min"),
			MaxBackups:  viper.GetInt("server.log.max_backups")})
		if err != nil {
			return err
		}
		logging.GlobalLogsWriter = logging.Dual{
			FileWriter: fileWriter,
			Stdout:     os.Stdout,
		}
	} else {
		logging.GlobalLogsWriter = os.Stdout
	}
	if err := logging.InitGlobalLogger(logging.GlobalLogsWriter); err != nil {
		return err
	}

	logging.Info("*** Creating new AppConfig ***")
	logging.Info("Server Name:", serverName)

	var appConfig AppConfig
	appConfig.ServerName = serverName

	port := cast.ToString(viper.Get("port"))
	if port == "" {
		port = viper.GetString("server.port")
	}
	appConfig.Authority = "0.0.0.0:" + port

	appConfig.AllowedOrigins = map[string]bool{}
	for _, origin := range viper.GetStringSlice("server.allowed_origins") {
		appConfig.AllowedOrigins[origin] = true
	}
	appConfig.TrustedIPHeader = viper.GetString("server.trusted_ip_header")
	appConfig.CountryHeader = viper.GetString("server.country_header")

	appConfig.RateLimitWindowSeconds = viper.GetInt("ratelimit.window_sec")
	appConfig.RateLimitCeiling = viper.GetInt("ratelimit.max_per_window")
	appConfig.VisitTTLSeconds = viper.GetInt("retention.visit_ttl_sec")
	appConfig.MaxEntryBytes = viper.GetInt("limits.max_entry_bytes")

	geoResolver, err := geo.CreateResolver(viper.GetString("geo.maxmind_path"))
	if err != nil {
		logging.Warn("Run without geo resolver:", err)
	}
	appConfig.GeoResolver = geoResolver

	metrics.Init(viper.GetBool("metrics.enabled"))

	Instance = &appConfig
	return nil
}

func (a *AppConfig) ScheduleClosing(c io.Closer) {
	a.closeMe = append(a.closeMe, c)
}

func (a *AppConfig) Close() error {
	var multiErr error
	for _, cl := range a.closeMe {
		if err := cl.Close(); err != nil {
			multiErr = multierror.Append(multiErr, err)
		}
	}

	return multiErr
}
