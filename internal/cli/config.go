package cli

import (
	"fmt"

	"github.com/xujingshi/LifeTrack/internal/keyring"
	"github.com/xujingshi/LifeTrack/internal/storage"
)

type ConfigCmd struct {
	SetConnection   ConfigSetConnectionCmd   `cmd:"" name:"set-connection" help:"Store a PostgreSQL connection string in the OS keyring."`
	ClearConnection ConfigClearConnectionCmd `cmd:"" name:"clear-connection" help:"Remove the stored connection string from the OS keyring."`
	Show            ConfigShowCmd            `cmd:"" help:"Show the active storage configuration."`
}

type ConfigSetConnectionCmd struct {
	ConnString string `arg:"" help:"PostgreSQL connection string. May contain a password; the keyring is the only place credentials are allowed."`
}

func (c *ConfigSetConnectionCmd) Run(ctx *Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}

	if err := keyring.SetConnectionString(c.ConnString); err != nil {
		return err
	}

	fmt.Println("Connection string stored in OS keyring")
	return nil
}

type ConfigClearConnectionCmd struct{}

func (c *ConfigClearConnectionCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		return err
	}

	fmt.Println("Connection string removed from OS keyring")
	return nil
}

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *Context) error {
	fmt.Printf("Storage: %s\n", ctx.Store.GetConfigPath())

	switch ctx.Store.(type) {
	case *storage.PostgresStore:
		fmt.Println("Backend: postgres")
	case *storage.JSONStore:
		fmt.Println("Backend: json")
	default:
		fmt.Println("Backend: sqlite")
	}

	if _, err := keyring.GetConnectionString(); err == nil {
		fmt.Println("Keyring: connection string present")
	} else {
		fmt.Println("Keyring: no stored connection string")
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	fmt.Printf("Default period: %s\n", settings.DefaultPeriod)
	if settings.NotifyTime != "" {
		fmt.Printf("Reminder time: %s\n", settings.NotifyTime)
	}
	return nil
}
