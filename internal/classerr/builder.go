package classerr

// Builder provides a fluent API for constructing ClassifiedErrors.
type Builder struct {
	category Category
	severity Severity
	retry    RetryStrategy
	message  string
	cause    error
	context  Context
}

// New starts a builder for a new error in the given category.
func New(category Category, message string) *Builder {
	return &Builder{
		category: category,
		severity: SeverityError,
		retry:    RetryNever,
		message:  message,
		context:  make(Context),
	}
}

// Wrap starts a builder that wraps an existing error.
func Wrap(err error, category Category, message string) *Builder {
	return &Builder{
		category: category,
		severity: SeverityError,
		retry:    RetryNever,
		message:  message,
		cause:    err,
		context:  make(Context),
	}
}

func (b *Builder) WithSeverity(s Severity) *Builder { b.severity = s; return b }
func (b *Builder) WithRetry(r RetryStrategy) *Builder { b.retry = r; return b }
func (b *Builder) WithContext(key string, value any) *Builder {
	b.context = b.context.Set(key, value)
	return b
}

func (b *Builder) Fatal() *Builder   { return b.WithSeverity(SeverityFatal) }
func (b *Builder) Warning() *Builder { return b.WithSeverity(SeverityWarning) }
func (b *Builder) Info() *Builder    { return b.WithSeverity(SeverityInfo) }

func (b *Builder) Retryable() *Builder { return b.WithRetry(RetryBackoff) }
func (b *Builder) Immediate() *Builder { return b.WithRetry(RetryImmediate) }
func (b *Builder) RateLimit() *Builder { return b.WithRetry(RetryRateLimit) }
func (b *Builder) UserAction() *Builder { return b.WithRetry(RetryUserAction) }

// Build produces the final ClassifiedError.
func (b *Builder) Build() *ClassifiedError {
	return &ClassifiedError{
		category: b.category,
		severity: b.severity,
		retry:    b.retry,
		message:  b.message,
		cause:    b.cause,
		context:  b.context,
	}
}

// Convenience constructors mirroring the compiler's stage boundaries.

func ParseError(message string) *Builder     { return New(CategoryParse, message).Fatal() }
func ValidateError(message string) *Builder  { return New(CategoryValidate, message).Fatal() }
func RepairError(message string) *Builder    { return New(CategoryRepair, message).Fatal() }
func TranspileError(message string) *Builder { return New(CategoryTranspile, message).Fatal() }
func CacheError(message string) *Builder     { return New(CategoryCache, message).Retryable() }
func AdapterError(message string) *Builder   { return New(CategoryAdapter, message).Retryable() }
func IOError(message string) *Builder        { return New(CategoryIO, message).Retryable() }
func ConfigError(message string) *Builder    { return New(CategoryConfig, message).Fatal() }
func InternalError(message string) *Builder  { return New(CategoryInternal, message).Fatal() }
