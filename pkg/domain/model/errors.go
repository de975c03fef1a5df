package model

import "errors"

var (
	// ErrScan means the scan root could not be enumerated.
	ErrScan = errors.New("scan failed")
	// ErrNoCreatives means the scan completed without finding any creative.
	ErrNoCreatives = errors.New("no Adobe HTML files found in the selected folder")

	// ErrMissingCredential is returned before any network activity when compression is
	// requested without an API key.
	ErrMissingCredential = errors.New("TinyPNG API key not configured")
	ErrMissingClickTag   = errors.New("click tag URL is required")
	ErrInvalidClickTag   = errors.New("click tag URL is invalid")

	ErrReadImage = errors.New("failed to read image")
	ErrUpload    = errors.New("failed to upload image")
	ErrProtocol  = errors.New("invalid response from compression service")
	ErrDownload  = errors.New("failed to download compressed image")
	ErrWrite     = errors.New("failed to write file")

	ErrCreativeNotFound = errors.New("creative not found")
	ErrNoBanners        = errors.New("no banner directories found")
)
