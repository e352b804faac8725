package config

import "time"

// File is the fully resolved tool configuration with all defaults applied.
type File struct {
	Server ServerConfig
	Tubes  map[string]TubeConfig
	HTTP   HTTPConfig
}

// ServerConfig locates the beanstalkd server.
type ServerConfig struct {
	Addr string
}

// TubeConfig carries the put defaults for one tube.
type TubeConfig struct {
	Priority uint32
	Delay    time.Duration
	TTR      time.Duration
}

// HTTPConfig configures the HTTP transfer client.
type HTTPConfig struct {
	Timeout   time.Duration
	BaseURL   string
	UserAgent string
}

// Default returns the configuration used when no config file is given.
func Default() *File {
	return &File{
		Server: ServerConfig{Addr: "127.0.0.1:11300"},
		Tubes:  map[string]TubeConfig{},
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "kitbag",
		},
	}
}

// TubeDefaults returns the put defaults for a tube, falling back to the
// protocol-conventional values when the tube has no block of its own.
func (f *File) TubeDefaults(name string) TubeConfig {
	if tc, ok := f.Tubes[name]; ok {
		return tc
	}
	return TubeConfig{Priority: 1024, Delay: 0, TTR: 60 * time.Second}
}
