// Package qrcode renders QR codes as PNG images with github.com/skip2/go-qrcode.
// The contact page links the WhatsApp shortcut through one.
package qrcode
