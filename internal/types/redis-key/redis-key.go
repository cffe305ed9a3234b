package rediskey

// 订单记录 redis key, JSON encoded OrderRecord
func OrderKey(prefix, orderID string) string {
	return prefix + ":order:" + orderID
}

// 客户订单索引 redis key, set of order ids
func CIDIndexKey(prefix, cid string) string {
	return prefix + ":cid:" + cid
}
