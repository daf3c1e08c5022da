package format

import (
	"fmt"
	"strings"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// localeLayout pairs a monday locale with its long date layout.
type localeLayout struct {
	locale monday.Locale
	date   string
}

var locales = map[string]localeLayout{
	"en":    {monday.LocaleEnUS, "January 2, 2006"},
	"en_us": {monday.LocaleEnUS, "January 2, 2006"},
	"en_gb": {monday.LocaleEnGB, "2 January 2006"},
	"de":    {monday.LocaleDeDE, "2. January 2006"},
	"de_de": {monday.LocaleDeDE, "2. January 2006"},
	"fr":    {monday.LocaleFrFR, "2 January 2006"},
	"fr_fr": {monday.LocaleFrFR, "2 January 2006"},
	"fr_ca": {monday.LocaleFrCA, "2 January 2006"},
	"es":    {monday.LocaleEsES, "2 de January de 2006"},
	"es_es": {monday.LocaleEsES, "2 de January de 2006"},
	"it":    {monday.LocaleItIT, "2 January 2006"},
	"it_it": {monday.LocaleItIT, "2 January 2006"},
	"pt":    {monday.LocalePtPT, "2 de January de 2006"},
	"pt_pt": {monday.LocalePtPT, "2 de January de 2006"},
	"pt_br": {monday.LocalePtBR, "2 de January de 2006"},
	"nl":    {monday.LocaleNlNL, "2 January 2006"},
	"nl_nl": {monday.LocaleNlNL, "2 January 2006"},
	"nl_be": {monday.LocaleNlBE, "2 January 2006"},
	"sv":    {monday.LocaleSvSE, "2 January 2006"},
	"sv_se": {monday.LocaleSvSE, "2 January 2006"},
	"da":    {monday.LocaleDaDK, "2. January 2006"},
	"da_dk": {monday.LocaleDaDK, "2. January 2006"},
	"fi":    {monday.LocaleFiFI, "2. January 2006"},
	"fi_fi": {monday.LocaleFiFI, "2. January 2006"},
	"pl":    {monday.LocalePlPL, "2 January 2006"},
	"pl_pl": {monday.LocalePlPL, "2 January 2006"},
	"ru":    {monday.LocaleRuRU, "2 January 2006"},
	"ru_ru": {monday.LocaleRuRU, "2 January 2006"},
	"ja":    {monday.LocaleJaJP, "2006年1月2日"},
	"ja_jp": {monday.LocaleJaJP, "2006年1月2日"},
	"zh":    {monday.LocaleZhCN, "2006年1月2日"},
	"zh_cn": {monday.LocaleZhCN, "2006年1月2日"},
	"ko":    {monday.LocaleKoKR, "2006년 1월 2일"},
	"ko_kr": {monday.LocaleKoKR, "2006년 1월 2일"},
}

// resolveLocale parses a BCP 47 tag and finds its layout, falling back
// from language-region to the bare language and finally to US English.
func resolveLocale(tag string) (localeLayout, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return locales["en_us"], fmt.Errorf("%w: %q", ErrLocale, tag)
	}

	base, _ := t.Base()
	key := strings.ToLower(base.String())

	if region, conf := t.Region(); conf == language.Exact {
		if l, ok := locales[key+"_"+strings.ToLower(region.String())]; ok {
			return l, nil
		}
	}

	if l, ok := locales[key]; ok {
		return l, nil
	}

	return locales["en_us"], nil
}
