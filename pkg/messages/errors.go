package messages

import "errors"

var (
	ErrNilAdapter            = errors.New("messages: adapter is nil")
	ErrEmptyLanguageCode     = errors.New("messages: empty language code")
	ErrNoTranslations        = errors.New("messages: no translations found")
	ErrFailedToParseYAML     = errors.New("messages: failed to parse YAML content")
	ErrYAMLParsingCancelled  = errors.New("messages: yaml parsing cancelled")
	ErrFailedToReadFile      = errors.New("messages: failed to read translation file")
	ErrLoadingFileCancelled  = errors.New("messages: loading translation file cancelled")
	ErrLanguageNotSupported  = errors.New("messages: language not supported")
	ErrFailedToReadEmbedded  = errors.New("messages: failed to read embedded translations")
	ErrUnsupportedFileFormat = errors.New("messages: unsupported translation file format")
)
