package bbcode

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the constructor's read-only configuration. A zero Config is
// usable (no smilies, block-mode spoilers, all embeds off so media tags
// fall back to links, no image domain restriction); DefaultConfig turns
// the embeds on. Once built, a Config is cheap to clone or share by
// reference across concurrent renders — it holds no mutable state.
type Config struct {
	Smilies              map[string]string `yaml:"smilies"`
	InlineSpoilers       bool              `yaml:"inline_spoilers"`
	EnableYouTubeEmbeds  bool              `yaml:"enable_youtube_embeds"`
	EnableEmbeds         bool              `yaml:"enable_embeds"`
	ImageDomainWhitelist []string          `yaml:"image_domain_whitelist"`
	// WordFilter is a supplemented feature (not part of the original
	// constructor contract): a case-insensitive whole-word substitution
	// table applied to text content before emoji substitution.
	WordFilter map[string]string `yaml:"word_filter"`
}

// DefaultConfig matches the documented field defaults: embeds and YouTube
// embeds on, block-mode spoilers, no whitelist (allow every image host).
func DefaultConfig() Config {
	return Config{
		EnableYouTubeEmbeds: true,
		EnableEmbeds:        true,
	}
}

// LoadConfig reads a YAML file into a Config, starting from DefaultConfig
// so an omitted field keeps its documented default rather than zeroing.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) imageHostAllowed(host string) bool {
	if len(c.ImageDomainWhitelist) == 0 {
		return true
	}
	for _, allowed := range c.ImageDomainWhitelist {
		if host == allowed {
			return true
		}
		if len(host) > len(allowed)+1 && host[len(host)-len(allowed)-1:] == "."+allowed {
			return true
		}
	}
	return false
}
