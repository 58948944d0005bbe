package redis

// keyPrefix namespaces every key this service writes.
const keyPrefix = "gocalc:"
