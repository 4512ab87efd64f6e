package postgres

import (
	"fmt"

	"kitchen/internal/adapters/out/postgres/orderrepo"
	"kitchen/internal/core/ports"

	"gorm.io/gorm"
)

// notifyFunction sends the table's channel name as a payload-free signal.
// Listeners only care that something changed.
const notifyFunction = `
CREATE OR REPLACE FUNCTION kitchen_notify_change() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify(TG_ARGV[0], '');
	RETURN NULL;
END;
$$ LANGUAGE plpgsql`

// Migrate creates or updates the orders schema and installs the triggers
// that feed the change notification channels. It is safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(notifyFunction).Error; err != nil {
			return fmt.Errorf("create notify function: %w", err)
		}

		for table, channel := range map[string]string{
			orderrepo.OrderDTO{}.TableName(): ports.ChannelOrders,
			orderrepo.ItemDTO{}.TableName():  ports.ChannelItems,
		} {
			trigger := table + "_notify"
			if err := tx.Exec(fmt.Sprintf("DROP TRIGGER IF EXISTS %s ON %s", trigger, table)).Error; err != nil {
				return fmt.Errorf("drop trigger %s: %w", trigger, err)
			}
			stmt := fmt.Sprintf(
				"CREATE TRIGGER %s AFTER INSERT OR UPDATE OR DELETE ON %s "+
					"FOR EACH STATEMENT EXECUTE FUNCTION kitchen_notify_change('%s')",
				trigger, table, channel,
			)
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("create trigger %s: %w", trigger, err)
			}
		}
		return nil
	})
}
