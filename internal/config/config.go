package config

import (
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Block описывает маркерную строку листа: заголовок блока в колонке A,
// отображаемое имя подкатегории и тип товара, к которому блок относится.
type Block struct {
	Header string `mapstructure:"header"`
	Title  string `mapstructure:"title"`
	Type   string `mapstructure:"type"`
}

type Config struct {
	App struct {
		Env string
	} `mapstructure:"app"`

	Telegram struct {
		Token string
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Sheet struct {
		Path     string
		Name     string  `mapstructure:"name"`
		StartRow int     `mapstructure:"start_row"`
		Blocks   []Block `mapstructure:"blocks"`
	} `mapstructure:"sheet"`

	Mailer struct {
		Targets []int64 `mapstructure:"targets"`
		Text    string  `mapstructure:"text"`
	} `mapstructure:"mailer"`
}

func Load(path string) (Config, error) {
	// .env рядом с бинарём может переопределить токен и пути
	_ = gotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	if c.Sheet.StartRow <= 0 {
		c.Sheet.StartRow = 1
	}
	return c, nil
}
