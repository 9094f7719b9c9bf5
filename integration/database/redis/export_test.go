package redis

var Ping = ping
