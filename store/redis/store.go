package redis

import "github.com/rsms/vaultfmt/store"

var _ store.Store = (*Redis)(nil)
