package cli

import (
	"fmt"
	"path/filepath"

	"github.com/xujingshi/LifeTrack/internal/backup"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return err
	}

	fmt.Printf("Created backup: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())

	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups found")
		return nil
	}

	fmt.Printf("Backups in %s:\n", mgr.GetBackupDir())
	for _, b := range backups {
		fmt.Printf("  %s  %s  %d bytes\n", filepath.Base(b.Path), b.Timestamp.Format("2006-01-02 15:04:05"), b.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	Backup string `arg:"" help:"Backup filename or full path."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())

	backupPath := c.Backup
	if !filepath.IsAbs(backupPath) {
		backupPath = filepath.Join(mgr.GetBackupDir(), backupPath)
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close database before restore: %w", err)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		return err
	}

	fmt.Printf("Restored from backup: %s\n", filepath.Base(backupPath))
	return nil
}
