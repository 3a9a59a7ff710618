package options

import "slices"

// Enumerate calls fn for every coherent option set, with DevPort left empty.
// It stops as soon as fn returns false.
func Enumerate(fn func(OptionSet) bool) {
	odmSubsets := subsets(ODMs)
	oauthSubsets := subsets(OAuthProviders)

	for _, tr := range Transpilers {
		for _, flow := range []bool{false, true} {
			if flow && tr != Babel {
				continue
			}
			for _, mk := range Markups {
				for _, st := range Stylesheets {
					for _, rt := range Routers {
						for _, ts := range TestFrameworks {
							for _, ch := range ChaiStyles {
								if ts == Jasmine && ch != Expect {
									continue
								}
								for _, bs := range []bool{false, true} {
									for _, uib := range []bool{false, true} {
										if uib && !bs {
											continue
										}
										for _, odms := range odmSubsets {
											for _, auth := range []bool{false, true} {
												if auth && len(odms) == 0 {
													continue
												}
												for _, oauth := range oauthSubsets {
													if len(oauth) > 0 && !auth {
														continue
													}
													for _, ws := range []bool{false, true} {
														set := OptionSet{
															Transpiler:  tr,
															Flow:        flow,
															Markup:      mk,
															Stylesheet:  st,
															Router:      rt,
															Testing:     ts,
															Chai:        ch,
															Bootstrap:   bs,
															UIBootstrap: uib,
															ODMs:        odms,
															Auth:        auth,
															OAuth:       oauth,
															WS:          ws,
														}
														if !fn(set.Clone()) {
															return
														}
													}
												}
											}
										}
									}
								}
							}
						}
					}
				}
			}
		}
	}
}

// subsets returns every subset of values, each sorted canonically.
func subsets[T ~string](values []T) [][]T {
	out := [][]T{{}}
	for _, v := range values {
		n := len(out)
		for i := 0; i < n; i++ {
			next := append(append([]T{}, out[i]...), v)
			out = append(out, next)
		}
	}
	for i, s := range out {
		slices.Sort(s)
		out[i] = s
	}
	return out
}
