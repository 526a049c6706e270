package config

import "github.com/footprint-tools/clikit/internal/domain"

// Provider is the domain.ConfigProvider backed by ~/.clikitrc.
type Provider struct{}

var _ domain.ConfigProvider = (*Provider)(nil)

func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) Get(key string) (string, bool) {
	return Get(key)
}

func (p *Provider) GetAll() (map[string]string, error) {
	return GetAll()
}

// Set writes key=value, keeping the rest of the file as it is.
func (p *Provider) Set(key, value string) error {
	return edit(func(lines []string) []string {
		lines, _ = Set(lines, key, value)
		return lines
	})
}

// Unset removes key so its default applies again.
func (p *Provider) Unset(key string) error {
	return edit(func(lines []string) []string {
		lines, _ = Unset(lines, key)
		return lines
	})
}

// edit applies change to the preferences file under the lock.
func edit(change func([]string) []string) error {
	return WithLock(func() error {
		lines, err := ReadLines()
		if err != nil {
			return err
		}
		return WriteLines(change(lines))
	})
}
