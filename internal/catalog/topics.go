package catalog

import "strconv"

const TopicChanges = "catalog.changes"

// Resource names double as URL segments and event prefixes.
const (
	ResourceProducts = "products"
	ResourceUsers    = "users"
	ResourceStores   = "stores"
	ResourceOrders   = "orders"
)

// PartitionKey keeps every event of one record on the same partition.
func PartitionKey(resource string, id int64) []byte {
	return []byte(resource + ":" + strconv.FormatInt(id, 10))
}
