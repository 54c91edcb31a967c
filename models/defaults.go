package model

import "github.com/docfold/docfold/pkg/conf"

var defaultSettings = []Setting{
	{Name: "transfer_chunk_size", Value: `100`, Type: "transfer"},
	{Name: "transfer_tx_timeout", Value: `120`, Type: "transfer"},
	{Name: "transfer_concurrency", Value: `8`, Type: "transfer"},
	{Name: "transfer_copy_retries", Value: `2`, Type: "transfer"},
	{Name: "transfer_retry_wait", Value: `1`, Type: "transfer"},
	{Name: "max_name_attempts", Value: `999`, Type: "transfer"},
	{Name: "max_walked_items", Value: `1000000`, Type: "transfer"},
	{Name: "max_walk_depth", Value: `65535`, Type: "transfer"},
	{Name: "cron_orphan_collect", Value: `@every 6h`, Type: "cron"},
	{Name: "cron_garbage_collect", Value: `@every 30m`, Type: "cron"},
	{Name: "orphan_grace_period", Value: `86400`, Type: "cron"},
	{Name: "notify_shared_transfer", Value: `1`, Type: "notification"},
	{Name: "db_version_" + conf.RequiredDBVersion, Value: `installed`, Type: "version"},
}
