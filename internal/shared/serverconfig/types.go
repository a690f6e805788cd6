package serverconfig

type Config struct {
	GameServer GameServerConfig `yaml:"gameserver" mapstructure:"gameserver"`
	GRPCServer GRPCServerConfig `yaml:"grpcserver" mapstructure:"grpcserver"`
	Rules      RulesConfig      `yaml:"rules" mapstructure:"rules"`
	Archive    ArchiveConfig    `yaml:"archive" mapstructure:"archive"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	JWTSecret  string           `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

type GameServerConfig struct {
	Host         string `yaml:"host" mapstructure:"host"`
	Port         int    `yaml:"port" mapstructure:"port"`
	NeedSecret   bool   `yaml:"need_secret" mapstructure:"need_secret"`
	AskTimeoutMS int    `yaml:"ask_timeout_ms" mapstructure:"ask_timeout_ms"`
}

type GRPCServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

// RulesConfig 是房间规则，启动时读一次，不参与热更新。
type RulesConfig struct {
	TurnTimeoutS     int `yaml:"turn_timeout_s" mapstructure:"turn_timeout_s"`
	RoomIdleTimeoutS int `yaml:"room_idle_timeout_s" mapstructure:"room_idle_timeout_s"`
	MapRows          int `yaml:"map_rows" mapstructure:"map_rows"`
	MapCols          int `yaml:"map_cols" mapstructure:"map_cols"`
	ResourcePoints   int `yaml:"resource_points" mapstructure:"resource_points"`
	FlushEveryMS     int `yaml:"flush_every_ms" mapstructure:"flush_every_ms"`
}

type ArchiveConfig struct {
	Driver   string         `yaml:"driver" mapstructure:"driver"` // memory/mongodb/mysql/postgres/sqlite
	MongoDB  MongoDBConfig  `yaml:"mongodb" mapstructure:"mongodb"`
	MySQL    MySQLConfig    `yaml:"mysql" mapstructure:"mysql"`
	Postgres PostgresConfig `yaml:"postgres" mapstructure:"postgres"`
	SQLite   SQLiteConfig   `yaml:"sqlite" mapstructure:"sqlite"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type PostgresConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	SSLMode  string `yaml:"sslmode" mapstructure:"sslmode"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type SQLiteConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"`         // debug/info/warn/error...
	GelfAddr   string `yaml:"gelf_addr" mapstructure:"gelf_addr"` // graylog udp 地址，空则不发
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}
