package wallet

import (
	"sync"
	"sync/atomic"
)

// onceWithErr works like sync.Once, except that f runs again on a later Do
// until it returns nil.
type onceWithErr struct {
	done uint32
	m    sync.Mutex
}

func (o *onceWithErr) Do(f func() error) error {
	if atomic.LoadUint32(&o.done) == 0 {
		return o.doSlow(f)
	}
	return nil
}

func (o *onceWithErr) doSlow(f func() error) error {
	o.m.Lock()
	defer o.m.Unlock()
	if o.done != 0 {
		return nil
	}
	if err := f(); err != nil {
		return err
	}
	atomic.StoreUint32(&o.done, 1)
	return nil
}
