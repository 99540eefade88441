package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// BillingConfig carries the defaults the admin billing panel applies
// when a contract field is left blank, plus the disclaimer printed on
// generated documents.
type BillingConfig struct {
	DefaultDurationMonths    int    `mapstructure:"defaultDurationMonths"`
	DefaultInterestFreeCount int    `mapstructure:"defaultInterestFreeCount"`
	MaxInstallments          int    `mapstructure:"maxInstallments"`
	BoletoDisclaimer         string `mapstructure:"boletoDisclaimer"`
}

func DefaultBillingConfig() BillingConfig {
	return BillingConfig{
		DefaultDurationMonths:    12,
		DefaultInterestFreeCount: 1,
		MaxInstallments:          60,
		BoletoDisclaimer:         "Linha de referência interna; não registrada em banco.",
	}
}

// BillingConfigHolder keeps the current config behind an atomic so
// handlers read it without locking while the file watcher swaps it.
type BillingConfigHolder struct {
	current atomic.Value // holds BillingConfig
}

func NewBillingConfigHolder() (*BillingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("billing")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/lfnm")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LFNM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultBillingConfig()
		v.SetDefault("billing.defaultDurationMonths", defaults.DefaultDurationMonths)
		v.SetDefault("billing.defaultInterestFreeCount", defaults.DefaultInterestFreeCount)
		v.SetDefault("billing.maxInstallments", defaults.MaxInstallments)
		v.SetDefault("billing.boletoDisclaimer", defaults.BoletoDisclaimer)
	}

	var cfg BillingConfig
	if err := v.UnmarshalKey("billing", &cfg); err != nil {
		return nil, err
	}
	if err := validateBillingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &BillingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated BillingConfig
		if err := v.UnmarshalKey("billing", &updated); err != nil {
			log.Printf("[billing-config] reload failed: %v", err)
			return
		}
		if err := validateBillingConfig(updated); err != nil {
			log.Printf("[billing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[billing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *BillingConfigHolder) Current() BillingConfig {
	if h == nil {
		return DefaultBillingConfig()
	}
	cfg, ok := h.current.Load().(BillingConfig)
	if !ok {
		return DefaultBillingConfig()
	}
	return cfg
}

func validateBillingConfig(cfg BillingConfig) error {
	if cfg.DefaultDurationMonths < 1 {
		return errors.New("billing.defaultDurationMonths must be >= 1")
	}
	if cfg.DefaultInterestFreeCount < 1 {
		return errors.New("billing.defaultInterestFreeCount must be >= 1")
	}
	if cfg.MaxInstallments < 1 {
		return errors.New("billing.maxInstallments must be >= 1")
	}
	return nil
}
