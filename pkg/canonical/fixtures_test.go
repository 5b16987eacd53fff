package canonical

// Golden vectors of the Inbenta API signature protocol.
const (
	fixtureTimestamp = 1552647740

	fixtureSearchBody = `{"total_count":1,"offset":0,"length":1000,"results":[{"event_id":"bG9nOjozOTUyMjEyNzg4MTk3NTk0NTU=","date":"2018-12-03T10:32:00+00:00","user_question":"flight","log_type":"SEARCH","has_matching":true,"matchings":[{"id_content":25,"external":false},{"id_content":4,"external":false},{"id_content":32,"external":false},{"id_content":1,"external":false},{"id_content":37,"external":false}],"user_type":0,"env":"production"}]}`

	fixtureSearchBaseString = `v1&1552647740&%22%7B%5C%22total_count%5C%22%3A1%2C%5C%22offset%5C%22%3A0%2C%5C%22length%5C%22%3A1000%2C%5C%22results%5C%22%3A%5B%7B%5C%22event_id%5C%22%3A%5C%22bG9nOjozOTUyMjEyNzg4MTk3NTk0NTU%3D%5C%22%2C%5C%22date%5C%22%3A%5C%222018-12-03T10%3A32%3A00%2B00%3A00%5C%22%2C%5C%22user_question%5C%22%3A%5C%22flight%5C%22%2C%5C%22log_type%5C%22%3A%5C%22SEARCH%5C%22%2C%5C%22has_matching%5C%22%3Atrue%2C%5C%22matchings%5C%22%3A%5B%7B%5C%22id_content%5C%22%3A25%2C%5C%22external%5C%22%3Afalse%7D%2C%7B%5C%22id_content%5C%22%3A4%2C%5C%22external%5C%22%3Afalse%7D%2C%7B%5C%22id_content%5C%22%3A32%2C%5C%22external%5C%22%3Afalse%7D%2C%7B%5C%22id_content%5C%22%3A1%2C%5C%22external%5C%22%3Afalse%7D%2C%7B%5C%22id_content%5C%22%3A37%2C%5C%22external%5C%22%3Afalse%7D%5D%2C%5C%22user_type%5C%22%3A0%2C%5C%22env%5C%22%3A%5C%22production%5C%22%7D%5D%7D%22`

	fixtureErrorBody = `{"error":{"message":"Signature provided is not valid","code":403}}`

	fixtureErrorBaseString = `v1&1552647740&%22%7B%5C%22error%5C%22%3A%7B%5C%22message%5C%22%3A%5C%22Signature+provided+is+not+valid%5C%22%2C%5C%22code%5C%22%3A403%7D%7D%22`
)
