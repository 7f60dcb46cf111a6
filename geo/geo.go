package geo

import (
	"errors"
	"fmt"
	"io/ioutil"
	"net"
	"strings"

	"github.com/nikhilbadyal/tracker/logging"
	"github.com/oschwald/geoip2-golang"
)

//UnknownCountry is stored when neither the edge platform nor the local
//database can place the client
const UnknownCountry = "Unknown"

var (
	ErrEmptyIP = errors.New("IP is empty")

	mmdbSuffix = ".mmdb"
)

type Resolver interface {
	ResolveCountry(ip string) (string, error)
}

//MaxMindResolver looks country ISO codes up in a local MaxMind database
type MaxMindResolver struct {
	parser *geoip2.Reader
}

type DummyResolver struct{}

//CreateResolver returns a MaxMind resolver if a database path was provided,
//a dummy resolver otherwise
func CreateResolver(geoipPath string) (Resolver, error) {
	if geoipPath == "" {
		return &DummyResolver{}, errors.New("Maxmind db source wasn't provided")
	}

	if !strings.HasSuffix(geoipPath, mmdbSuffix) {
		geoipPath = findMmdbFile(geoipPath)
	}

	parser, err := geoip2.Open(geoipPath)
	if err != nil {
		return &DummyResolver{}, fmt.Errorf("Error opening maxmind db [%s]: %v", geoipPath, err)
	}

	logging.Info("Loaded MaxMind db:", geoipPath)
	return &MaxMindResolver{parser: parser}, nil
}

func (mr *MaxMindResolver) ResolveCountry(ip string) (string, error) {
	if ip == "" {
		return UnknownCountry, ErrEmptyIP
	}

	country, err := mr.parser.Country(net.ParseIP(ip))
	if err != nil {
		return UnknownCountry, fmt.Errorf("Error resolving country from ip %s: %v", ip, err)
	}

	if country.Country.IsoCode == "" {
		return UnknownCountry, nil
	}

	return country.Country.IsoCode, nil
}

func (dr *DummyResolver) ResolveCountry(ip string) (string, error) {
	return UnknownCountry, nil
}

func findMmdbFile(path string) string {
	files, err := ioutil.ReadDir(path)
	if err != nil {
		logging.Error(err)
		return ""
	}

	for _, f := range files {
		if strings.HasSuffix(f.Name(), mmdbSuffix) {
			if !strings.HasSuffix(path, "/") {
				path = path + "/"
			}
			return path + f.Name()
		}
	}

	return ""
}
