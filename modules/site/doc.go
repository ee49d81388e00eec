// Package site serves the Velve Produce marketing site.
//
// The browser holds no application state. Each visitor, identified by a
// cookie, gets a navigation.Controller and a contact.Flow kept in memory for
// the idle timeout. Datastar actions post to the service and receive element
// patches and scripts over server-sent events:
//
//	GET  /                  full page (?page, ?section, ?lang)
//	POST /navigate          switch page, then scroll once mounted
//	POST /mounted           the browser rendered #page
//	POST /sections/visible  a landing section crossed the visibility threshold
//	POST /locale            set (?lang) or toggle the locale
//	POST /contact           submit the contact form
//	POST /contact/reset     back to an empty form
//	GET  /qr/whatsapp.png   WhatsApp QR code
//
// Every route also works without JavaScript through plain links and forms.
package site
