package config

type config struct {
	Server      server      `yaml:"server" mapstructure:"server"`
	Mysql       mysql       `yaml:"mysql" mapstructure:"mysql"`
	Redis       redis       `yaml:"redis" mapstructure:"redis"`
	RabbitMq    rabbitmq    `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Jwt         jwt         `yaml:"jwt" mapstructure:"jwt"`
	Jaeger      jaeger      `yaml:"jaeger" mapstructure:"jaeger"`
	Sentinel    sentinel    `yaml:"sentinel" mapstructure:"sentinel"`
	Interaction interaction `yaml:"interaction" mapstructure:"interaction"`
}

type server struct {
	Addr        string   `yaml:"addr"`
	MetricsPath string   `yaml:"metrics_path" mapstructure:"metrics_path"`
	PprofAddr   string   `yaml:"pprof_addr" mapstructure:"pprof_addr"`
	LogLevel    string   `yaml:"log_level" mapstructure:"log_level"`
	CorsOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	NodeId      int64    `yaml:"node_id" mapstructure:"node_id"`
}

type mysql struct {
	Addr     string `yaml:"addr"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Charset  string `yaml:"charset"`
}

type redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type rabbitmq struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// MaxRetries 事件处理失败后最多尝试的次数，之后进入死信队列
	MaxRetries int `yaml:"max_retries"`
}

type jwt struct {
	Secret  string `yaml:"secret"`
	Timeout string `yaml:"timeout"`
}

type jaeger struct {
	Enabled   bool   `yaml:"enabled"`
	AgentAddr string `yaml:"agent_addr" mapstructure:"agent_addr"`
}

type sentinel struct {
	ToggleQps float64 `yaml:"toggle_qps" mapstructure:"toggle_qps"`
}

type interaction struct {
	AllowSelfSubscription bool   `yaml:"allow_self_subscription" mapstructure:"allow_self_subscription"`
	CommentRateLimit      int    `yaml:"comment_rate_limit" mapstructure:"comment_rate_limit"`
	ToggleLockTTL         string `yaml:"toggle_lock_ttl" mapstructure:"toggle_lock_ttl"`
}
