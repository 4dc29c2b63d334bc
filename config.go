package transferbuf

import "errors"

type Config struct {
	// MaxBufferSize is the maximum transfer payload size, in bytes.
	// No buffer ever grows past it; larger transfers are truncated at
	// write time and rejected by the surrounding reception logic.
	MaxBufferSize int

	// NumStaticSlots is the number of pre-reserved static buffer slots.
	// Zero disables static storage entirely.
	NumStaticSlots int

	// StaticSlotSize is the capacity of each static slot, in bytes.
	//
	// A slot can only hold a transfer when it covers MaxBufferSize, since
	// a transfer's final size is unknown until it completes. Smaller slots
	// force every placement to be dynamic.
	StaticSlotSize int
}

func (c Config) Validate(pool BlockPooler) error {
	var errs []error
	if c.MaxBufferSize <= 0 {
		errs = append(errs, errors.New("invalid config: MaxBufferSize must be positive"))
	}
	if c.NumStaticSlots < 0 {
		errs = append(errs, errors.New("invalid config: NumStaticSlots cannot be negative"))
	}
	if c.NumStaticSlots > 0 && c.StaticSlotSize <= 0 {
		errs = append(errs, errors.New("invalid config: StaticSlotSize must be positive when static slots are configured"))
	}
	if pool.BlockSize() <= 0 {
		errs = append(errs, errors.New("invalid config: pool block size must be positive"))
	}
	return errors.Join(errs...)
}

func DefaultConfig() Config {
	return Config{
		MaxBufferSize:  512, // Largest multi-frame payload the transport accepts.
		NumStaticSlots: 4,
		StaticSlotSize: 512, // Slots cover MaxBufferSize so static placement stays enabled.
	}
}
