package testHelpers

import (
	"net"
	"net/http"
	"path/filepath"

	"nq2jld/internal/config"
	"nq2jld/internal/projectpath"

	log "github.com/sirupsen/logrus"
)

var SampleConfigDir = filepath.Join(projectpath.Root, "testHelpers", "sampleConfigs")

// ServeSampleConfigDir serves the sample inputs so url sources have something to fetch
func ServeSampleConfigDir() (*http.Server, net.Listener, error) {
	fileServer := http.FileServer(http.Dir(SampleConfigDir))
	mux := http.NewServeMux()
	mux.Handle("/", fileServer)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, nil, err
	}

	server := &http.Server{
		Handler: mux,
	}

	go func() {
		log.Printf("Static file server running on %s", listener.Addr().String())
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Error serving: %v", err)
		}
	}()

	return server, listener, nil
}

// Create a copy of a sample config in dir so a test can change it freely
func NewTempConfig(fileName, dir string) (string, error) {
	conf, err := config.ReadConfig(fileName, SampleConfigDir)
	if err != nil {
		return "", err
	}

	tempConfigPath := filepath.Join(dir, "mocked-"+filepath.Base(fileName))

	err = conf.WriteConfigAs(tempConfigPath)
	if err != nil {
		return "", err
	}

	return tempConfigPath, nil
}

// Update one key of one entry in the sources array
func MutateYamlSource(configPath string, index int, key string, value interface{}) error {
	conf, err := config.ReadConfigPath(configPath)
	if err != nil {
		return err
	}

	var sources []map[string]interface{}
	if err := conf.UnmarshalKey("sources", &sources); err != nil {
		return err
	}

	sources[index][key] = value

	conf.Set("sources", sources)

	return conf.WriteConfigAs(configPath)
}
