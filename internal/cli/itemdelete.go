package cli

import "fmt"

type ItemDeleteCmd struct {
	Item string `arg:"" help:"Item name or ID."`
}

func (c *ItemDeleteCmd) Run(ctx *Context) error {
	item, err := ctx.resolveItem(c.Item)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.DeleteItem(item.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted item: %s (restore with 'lifetrack restore %s')\n", item.Name, item.ID)
	return nil
}

type ItemRestoreCmd struct {
	ID string `arg:"" help:"ID of the deleted item."`
}

func (c *ItemRestoreCmd) Run(ctx *Context) error {
	if err := ctx.Store.RestoreItem(c.ID); err != nil {
		return err
	}

	item, err := ctx.Store.GetItem(c.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Restored item: %s\n", item.Name)
	return nil
}
