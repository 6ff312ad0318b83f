// Package wikipedia scrapes the archived "List of countries by GDP (nominal)"
// page.
//
// the scraper is read-only and stateless, the output depends solely on the
// page it is given. it is split the usual way:
// 1) link -> markup (Client.Fetch)
// 2) markup -> rows (Extractor.Extract)
//
// the markup -> rows part is declarative goquery selectors over the third
// tbody of the page. anything that does not look like a country row (a
// header, a region subtotal, a country without an estimate) is skipped,
// anything that looks like one but does not decode is an error.
package wikipedia
