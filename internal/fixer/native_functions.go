package fixer

// nativeFunctions are the built-in functions known to native_function_casing.
var nativeFunctions = map[string]struct{}{
	"abs": {}, "array_change_key_case": {}, "array_chunk": {},
	"array_column": {}, "array_combine": {}, "array_count_values": {},
	"array_diff": {}, "array_diff_assoc": {}, "array_diff_key": {},
	"array_fill": {}, "array_fill_keys": {}, "array_filter": {},
	"array_flip": {}, "array_intersect": {}, "array_intersect_key": {},
	"array_is_list": {}, "array_key_exists": {}, "array_key_first": {},
	"array_key_last": {}, "array_keys": {}, "array_map": {},
	"array_merge": {}, "array_merge_recursive": {}, "array_pad": {},
	"array_pop": {}, "array_product": {}, "array_push": {}, "array_rand": {},
	"array_reduce": {}, "array_replace": {}, "array_reverse": {},
	"array_search": {}, "array_shift": {}, "array_slice": {},
	"array_splice": {}, "array_sum": {}, "array_unique": {},
	"array_unshift": {}, "array_values": {}, "array_walk": {}, "arsort": {},
	"asort": {}, "base64_decode": {}, "base64_encode": {}, "basename": {},
	"bin2hex": {}, "call_user_func": {}, "call_user_func_array": {},
	"ceil": {}, "chr": {}, "class_exists": {}, "compact": {}, "count": {},
	"count_chars": {}, "crc32": {}, "ctype_alnum": {}, "ctype_alpha": {},
	"ctype_digit": {}, "ctype_lower": {}, "ctype_space": {},
	"ctype_upper": {}, "current": {}, "date": {}, "define": {}, "defined": {},
	"dirname": {}, "end": {}, "enum_exists": {}, "explode": {}, "extract": {},
	"fclose": {}, "feof": {}, "fflush": {}, "fgets": {}, "file": {},
	"file_exists": {}, "file_get_contents": {}, "file_put_contents": {},
	"filter_var": {}, "floor": {}, "fopen": {}, "fread": {},
	"func_get_args": {}, "function_exists": {}, "fwrite": {}, "get_class": {},
	"get_object_vars": {}, "get_parent_class": {}, "gettype": {}, "hash": {},
	"hash_equals": {}, "hash_hmac": {}, "hex2bin": {}, "htmlspecialchars": {},
	"http_build_query": {}, "implode": {}, "in_array": {}, "intdiv": {},
	"interface_exists": {}, "intval": {}, "is_a": {}, "is_array": {},
	"is_bool": {}, "is_callable": {}, "is_dir": {}, "is_file": {},
	"is_float": {}, "is_int": {}, "is_iterable": {}, "is_null": {},
	"is_numeric": {}, "is_object": {}, "is_readable": {}, "is_resource": {},
	"is_scalar": {}, "is_string": {}, "is_subclass_of": {}, "is_writable": {},
	"iterator_to_array": {}, "join": {}, "json_decode": {}, "json_encode": {},
	"key": {}, "krsort": {}, "ksort": {}, "lcfirst": {}, "ltrim": {},
	"max": {}, "md5": {}, "method_exists": {}, "microtime": {}, "min": {},
	"mkdir": {}, "mt_rand": {}, "next": {}, "number_format": {},
	"ob_end_clean": {}, "ob_get_clean": {}, "ob_start": {}, "ord": {},
	"parse_str": {}, "parse_url": {}, "pathinfo": {}, "pow": {},
	"preg_match": {}, "preg_match_all": {}, "preg_quote": {},
	"preg_replace": {}, "preg_replace_callback": {}, "preg_split": {},
	"print_r": {}, "property_exists": {}, "random_bytes": {},
	"random_int": {}, "range": {}, "rawurlencode": {}, "realpath": {},
	"reset": {}, "rmdir": {}, "round": {}, "rsort": {}, "rtrim": {},
	"serialize": {}, "settype": {}, "sha1": {}, "sort": {}, "sprintf": {},
	"sqrt": {}, "str_contains": {}, "str_ends_with": {}, "str_pad": {},
	"str_repeat": {}, "str_replace": {}, "str_split": {},
	"str_starts_with": {}, "strcasecmp": {}, "strcmp": {}, "strlen": {},
	"strpos": {}, "strrev": {}, "strrpos": {}, "strstr": {}, "strtolower": {},
	"strtotime": {}, "strtoupper": {}, "substr": {}, "substr_count": {},
	"time": {}, "trait_exists": {}, "trigger_error": {}, "trim": {},
	"uasort": {}, "ucfirst": {}, "ucwords": {}, "uksort": {}, "uniqid": {},
	"unlink": {}, "unserialize": {}, "urldecode": {}, "urlencode": {},
	"usort": {}, "var_dump": {}, "var_export": {}, "version_compare": {},
	"vsprintf": {}, "wordwrap": {},
}
