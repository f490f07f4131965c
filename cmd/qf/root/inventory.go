package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"questforge/internal/engine"
	"questforge/internal/ui"
)

func newInventoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "List loot and equipment slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			svc, _, cleanup, err := openSession(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			v, err := svc.Snapshot(ctx)
			if err != nil {
				return err
			}
			eq := v.Equipped()
			fmt.Fprintln(out, ui.Heading(ui.IconBox, fmt.Sprintf("Inventory (%d equipped / %d slots)", len(eq), engine.MaxEquipped)))
			if len(v.Inventory) == 0 {
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("Empty. Each completed quest has a %.0f%% chance to drop loot.", engine.LootChance*100)))
				return nil
			}
			for _, it := range v.Inventory {
				mark := "  "
				if it.Item.Equipped {
					mark = ui.Good.Render("E ")
				}
				fmt.Fprintf(out, "%s%s %s %s %s\n", mark,
					ui.Key.Render(shortID(it.Item.ID)),
					ui.RarityText(string(it.Def.Rarity), it.Def.Name),
					ui.Muted.Render(it.Def.Describe()),
					ui.Muted.Render(string(it.Def.Rarity)))
			}
			return nil
		},
	}

	cmd.AddCommand(newEquipCmd(true), newEquipCmd(false))
	return cmd
}

func newEquipCmd(equip bool) *cobra.Command {
	use, short, verb := "equip <item-id>", "Equip an item", "Equipped"
	if !equip {
		use, short, verb = "unequip <item-id>", "Move an item back to storage", "Unequipped"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("item id (or a unique prefix) is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			_, sess, cleanup, err := openSession(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			var it *engine.ItemView
			if equip {
				it, err = sess.Equip(ctx, args[0])
			} else {
				it, err = sess.Unequip(ctx, args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconGem+" "+verb),
				ui.RarityText(string(it.Def.Rarity), it.Def.Name), ui.Muted.Render(it.Def.Describe()))
			return nil
		},
	}
}
