package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
)

// BearerTokenEnv - единственная переменная окружения с токеном X API.
const BearerTokenEnv = "X_BEARER_TOKEN"

// Config представляет основную конфигурацию агрегатора новостей рестлинга.
// Содержит настройки сервера, логгера, лент, конвейера обработки,
// выходных файлов и клиента соцсети.
type Config struct {
	Server     ServerConfig     `json:"server"`
	Logger     LoggerConfig     `json:"logger"`
	Feeds      []FeedURL        `json:"feeds"`
	Aggregator AggregatorConfig `json:"aggregator"`
	Output     OutputConfig     `json:"output"`
	Social     SocialConfig     `json:"social"`
}

// ServerConfig содержит адрес, на котором слушает HTTP-сервер.
type ServerConfig struct {
	Address string `json:"address"`
}

// LoggerConfig содержит настройки системы логирования.
// Пустые File и ErrorFile означают вывод в stderr.
type LoggerConfig struct {
	Level     string `json:"level"`
	File      string `json:"file"`
	ErrorFile string `json:"error_file"`
}

// FeedURL представляет конфигурацию отдельной RSS-ленты.
// Name попадает в поле source каждой новости.
type FeedURL struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AggregatorConfig содержит лимиты и тайминги конвейера.
// Длительности задаются строками в формате time.ParseDuration.
// PolitenessDelay действует только между лентами одного хоста.
type AggregatorConfig struct {
	PerSourceLimit   int    `json:"per_source_limit"`
	BucketLimit      int    `json:"bucket_limit"`
	SummaryMaxLength int    `json:"summary_max_length"`
	MaxRetries       int    `json:"max_retries"`
	RequestTimeout   string `json:"request_timeout"`
	BaseBackoff      string `json:"base_backoff"`
	PolitenessDelay  string `json:"politeness_delay"`
	Concurrency      int    `json:"concurrency"`
	RefreshInterval  string `json:"refresh_interval"`
}

// OutputConfig - пути к JSON-файлам для фронтенда.
type OutputConfig struct {
	RawNews       string `json:"raw_news"`
	SmackDownNews string `json:"smackdown_news"`
	Posts         string `json:"posts"`
}

// SocialConfig содержит настройки X API.
// Токен никогда не читается из файла, только из окружения.
type SocialConfig struct {
	BaseURL     string `json:"base_url"`
	Username    string `json:"username"`
	MaxResults  int    `json:"max_results"`
	PostURLBase string `json:"post_url_base"`
	BearerToken string `json:"-"`
}

// Load загружает конфигурацию из JSON-файла поверх значений по умолчанию
// и подставляет токен из окружения. Пустой путь означает
// конфигурацию по умолчанию.
func Load(configPath string) (*Config, error) {
	cfg := New()
	if configPath != "" {
		fileData, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		if err := json.Unmarshal(fileData, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON from file %s: %w", configPath, err)
		}
	}
	cfg.Social.BearerToken = os.Getenv(BearerTokenEnv)
	return cfg, nil
}

// LoadOptional ведет себя как Load, но отсутствующий файл не считается ошибкой.
func LoadOptional(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return Load("")
	}
	return Load(configPath)
}

// New создает новый экземпляр Config с значениями по умолчанию.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Address: ":8080",
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		Feeds: DefaultFeeds(),
		Aggregator: AggregatorConfig{
			PerSourceLimit:   10,
			BucketLimit:      20,
			SummaryMaxLength: 200,
			MaxRetries:       3,
			RequestTimeout:   "30s",
			BaseBackoff:      "1s",
			PolitenessDelay:  "1s",
			Concurrency:      4,
		},
		Output: OutputConfig{
			RawNews:       "data/raw-news.json",
			SmackDownNews: "data/smackdown-news.json",
			Posts:         "data/tweets.json",
		},
		Social: SocialConfig{
			BaseURL:     "https://api.twitter.com",
			Username:    "JesseRodPodcast",
			MaxResults:  5,
			PostURLBase: "https://x.com",
		},
	}
}

// DefaultFeeds возвращает список лент рестлинга по умолчанию.
func DefaultFeeds() []FeedURL {
	return []FeedURL{
		{Name: "Wwe Official", URL: "https://www.wwe.com/rss.xml"},
		{Name: "Pwinsider", URL: "https://www.pwinsider.com/feeds/rss.xml"},
		{Name: "Fightful", URL: "https://www.fightful.com/rss.xml"},
		{Name: "Wrestling Inc", URL: "https://www.wrestlinginc.com/feed/"},
		{Name: "Cageside Seats", URL: "https://www.cagesideseats.com/rss/index.xml"},
		{Name: "Bleacher Report", URL: "https://bleacherreport.com/wwe/rss"},
		{Name: "Sportskeeda", URL: "https://www.sportskeeda.com/wwe/feed"},
		{Name: "Wrestling News", URL: "https://wrestlingnews.co/feed/"},
	}
}

// Validate проверяет корректность конфигурации.
// Возвращает ошибку с описанием первой найденной проблемы.
// Отсутствие токена здесь не проверяется: это ошибка конкретной операции.
func (c *Config) Validate() error {
	if len(c.Feeds) == 0 {
		return fmt.Errorf("feeds must not be empty")
	}
	for _, feed := range c.Feeds {
		if _, err := url.ParseRequestURI(feed.URL); err != nil {
			return fmt.Errorf("invalid url in feeds: %s", feed.URL)
		}
		if feed.Name == "" {
			return fmt.Errorf("feed name cannot be empty for url: %s", feed.URL)
		}
	}
	a := c.Aggregator
	if a.PerSourceLimit <= 0 {
		return fmt.Errorf("aggregator.per_source_limit must be a positive number")
	}
	if a.BucketLimit <= 0 {
		return fmt.Errorf("aggregator.bucket_limit must be a positive number")
	}
	if a.SummaryMaxLength <= 0 {
		return fmt.Errorf("aggregator.summary_max_length must be a positive number")
	}
	if a.MaxRetries <= 0 {
		return fmt.Errorf("aggregator.max_retries must be a positive number")
	}
	if a.Concurrency <= 0 {
		return fmt.Errorf("aggregator.concurrency must be a positive number")
	}
	for name, value := range map[string]string{
		"aggregator.request_timeout":  a.RequestTimeout,
		"aggregator.base_backoff":     a.BaseBackoff,
		"aggregator.politeness_delay": a.PolitenessDelay,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	if a.RefreshInterval != "" {
		if d, err := time.ParseDuration(a.RefreshInterval); err != nil || d <= 0 {
			return fmt.Errorf("invalid aggregator.refresh_interval: %q", a.RefreshInterval)
		}
	}
	if c.Output.RawNews == "" || c.Output.SmackDownNews == "" || c.Output.Posts == "" {
		return fmt.Errorf("output paths must not be empty")
	}
	if _, err := url.ParseRequestURI(c.Social.BaseURL); err != nil {
		return fmt.Errorf("invalid social.base_url: %s", c.Social.BaseURL)
	}
	if c.Social.Username == "" {
		return fmt.Errorf("social.username is not set")
	}
	if c.Social.MaxResults <= 0 {
		return fmt.Errorf("social.max_results must be a positive number")
	}
	return nil
}

// Timeout возвращает таймаут одного HTTP-запроса.
// Вызывать только после успешного Validate.
func (a AggregatorConfig) Timeout() time.Duration { return mustDuration(a.RequestTimeout) }

// Backoff возвращает базовую задержку между повторами.
func (a AggregatorConfig) Backoff() time.Duration { return mustDuration(a.BaseBackoff) }

// Politeness возвращает паузу между запросами к одному хосту.
func (a AggregatorConfig) Politeness() time.Duration { return mustDuration(a.PolitenessDelay) }

// Refresh возвращает интервал фонового обновления; 0 - обновление выключено.
func (a AggregatorConfig) Refresh() time.Duration { return mustDuration(a.RefreshInterval) }

func mustDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
